// Package planner implements the deterministic trend-fusion and
// weekly-planning engine: trend normalization, prompt fusion, seeding,
// 7-day plan assembly and tabular export. Every function here is a pure
// function of its inputs and safe for concurrent use.
package planner

import (
	"time"

	"github.com/entreplan/planner/internal/models"
)

// StartOfWeek snaps a date to the Monday of its week, at midnight UTC.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	t = t.AddDate(0, 0, -offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildWeeklyPlan assembles a 7-day plan from a seed, a normalized trend
// set, a platform profile and optional brand context. Day i (0=Monday) gets
// templates[(seed+i) mod 8], automations[(seed+i) mod len], the fixed
// weekday theme for i, and a prompt fused from those parts. Identical
// inputs always produce an identical plan.
func BuildWeeklyPlan(seed uint64, set models.TrendSet, profile models.PlatformProfile, brand *models.Brand, weekStart time.Time) models.WeeklyPlan {
	plan := models.WeeklyPlan{
		WeekStart: weekStart,
		Platform:  profile.Name,
		Days:      make([]models.DayPlan, 0, 7),
	}

	for i := 0; i < 7; i++ {
		tmpl := promptTemplates[(seed+uint64(i))%uint64(len(promptTemplates))]
		auto := automations[(seed+uint64(i))%uint64(len(automations))]
		theme := weekdayThemes[i]
		fused := FusePrompt(tmpl, profile, set, brand)

		plan.Days = append(plan.Days, models.DayPlan{
			Date:       weekStart.AddDate(0, 0, i),
			Theme:      theme.Label,
			Hook:       theme.Hook,
			Platform:   profile.Name,
			Category:   tmpl.Category,
			PromptText: fused.Text,
			Automation: auto,
		})
	}
	return plan
}
