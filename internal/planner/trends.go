package planner

import (
	"strings"
	"time"

	"github.com/entreplan/planner/internal/models"
)

// NormalizeTrends cleans and classifies raw trend tokens into a TrendSet.
// Tokens are trimmed, empties dropped, and deduplicated case-insensitively
// keeping the first occurrence's casing. Tokens starting with '#' are
// hashtags, everything else a phrase. Hashtags are truncated to
// hashtagLimit (earliest-seen kept) after classification; phrases are never
// truncated. Malformed input yields an empty set, never an error.
func NormalizeTrends(raw []string, hashtagLimit int) models.TrendSet {
	var set models.TrendSet
	seen := make(map[string]bool, len(raw))

	for _, token := range raw {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if seen[key] {
			continue
		}
		seen[key] = true

		if strings.HasPrefix(token, "#") {
			set.Hashtags = append(set.Hashtags, token)
		} else {
			set.Phrases = append(set.Phrases, token)
		}
	}

	if hashtagLimit >= 0 && len(set.Hashtags) > hashtagLimit {
		set.Hashtags = set.Hashtags[:hashtagLimit]
	}
	return set
}

// SplitManualTrends splits manually entered trend text on commas and
// newlines. Tokens are returned untrimmed; NormalizeTrends handles cleanup.
func SplitManualTrends(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
}

// DemoTrends returns the static seasonal demo trend list for the given date.
// No network involved; the same date always yields the same list.
func DemoTrends(t time.Time) []string {
	switch t.Month() {
	case time.November, time.December:
		return []string{"#SmallBusinessSaturday", "#HolidayGiftGuide", "#ShopLocal", "cozy vibes"}
	case time.January, time.February:
		return []string{"#NewYearNewYou", "#GoalSetting", "#Productivity", "content planning"}
	default:
		return []string{"#MondayMotivation", "#TipTuesday", "#CustomerLove", "behind the scenes"}
	}
}
