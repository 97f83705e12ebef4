// Planner model definitions

package models

import (
	"encoding/json"
	"time"
)

// Brand is the optional brand context carried inside a QR payload.
// Either field may be empty.
type Brand struct {
	Industry string `json:"industry,omitempty"`
	Niche    string `json:"niche,omitempty"`
}

// Empty reports whether the brand carries no usable context.
func (b *Brand) Empty() bool {
	return b == nil || (b.Industry == "" && b.Niche == "")
}

// BrandPayload is a validated QR payload. Trend-capable payloads carry
// EtsyPlannerURL, AILesson and at least the trends key.
type BrandPayload struct {
	EtsyPlannerURL string   `json:"EtsyPlannerURL,omitempty"`
	AILesson       string   `json:"AILesson,omitempty"`
	Brand          *Brand   `json:"brand,omitempty"`
	Trends         []string `json:"trends,omitempty"`
	Platform       string   `json:"platform,omitempty"`
}

// TrendSet holds normalized trends split into hashtags and plain phrases.
// Both sequences are deduplicated case-insensitively in first-seen order;
// hashtags are truncated to the platform limit, phrases are unbounded.
type TrendSet struct {
	Hashtags []string `json:"hashtags"`
	Phrases  []string `json:"phrases"`
}

// Empty reports whether the set contains no trends at all.
func (s TrendSet) Empty() bool {
	return len(s.Hashtags) == 0 && len(s.Phrases) == 0
}

// PlatformProfile is the fixed metadata for one supported social platform.
type PlatformProfile struct {
	Name         string `json:"name"`
	Hint         string `json:"hint"`
	HashtagLimit int    `json:"hashtag_limit"`
}

// PromptTemplate is one of the eight fixed prompt categories.
type PromptTemplate struct {
	Category string `json:"category"`
	BaseText string `json:"base_text"`
}

// FusedPrompt is the final composed prompt for one category and platform.
// Text is fully composed; nothing mutates it afterwards.
type FusedPrompt struct {
	Category string `json:"category"`
	Platform string `json:"platform"`
	Text     string `json:"text"`
}

// AutomationIdea is one entry of the fixed automation catalog.
type AutomationIdea struct {
	Title string `json:"title"`
	Idea  string `json:"idea"`
	Tools string `json:"tools"`
}

// DayPlan is one planned day of a week.
type DayPlan struct {
	Date       time.Time      `json:"-"`
	Theme      string         `json:"theme"`
	Hook       string         `json:"hook"`
	Platform   string         `json:"platform"`
	Category   string         `json:"category"`
	PromptText string         `json:"prompt"`
	Automation AutomationIdea `json:"automation"`
}

// ISODate renders the day's date as YYYY-MM-DD.
func (d DayPlan) ISODate() string {
	return d.Date.Format("2006-01-02")
}

// MarshalJSON emits the date as a plain ISO YYYY-MM-DD string.
func (d DayPlan) MarshalJSON() ([]byte, error) {
	type alias DayPlan
	return json.Marshal(struct {
		Date string `json:"date"`
		alias
	}{Date: d.ISODate(), alias: alias(d)})
}

// WeeklyPlan is a full 7-day plan anchored on a Monday.
// Days are always exactly 7 entries, Monday through Sunday.
type WeeklyPlan struct {
	WeekStart time.Time `json:"-"`
	Platform  string    `json:"platform"`
	Days      []DayPlan `json:"days"`
}

// MarshalJSON emits the week start as a plain ISO YYYY-MM-DD string.
func (p WeeklyPlan) MarshalJSON() ([]byte, error) {
	type alias WeeklyPlan
	return json.Marshal(struct {
		WeekStart string `json:"week_start"`
		alias
	}{WeekStart: p.WeekStart.Format("2006-01-02"), alias: alias(p)})
}
