// Package handlers holds the business logic between the HTTP routes and the
// planning engine: payload validation, platform fallback, trend collection
// and plan assembly.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/entreplan/planner/internal/logging"
	"github.com/entreplan/planner/internal/models"
	"github.com/entreplan/planner/internal/planner"
)

// PlanRequest is the decoded body of plan generation and export requests.
type PlanRequest struct {
	// Payload is the raw QR payload (JSON object or a bare URL string).
	Payload json.RawMessage `json:"payload,omitempty"`
	// Platform overrides the payload's platform when set.
	Platform string `json:"platform,omitempty"`
	// WeekOf is any ISO date inside the wanted week; it snaps to Monday.
	WeekOf string `json:"week_of"`
	// ManualTrends is free text split on commas and newlines.
	ManualTrends string `json:"manual_trends,omitempty"`
	// UseDemoTrends appends the static seasonal demo list for the week.
	UseDemoTrends bool `json:"use_demo_trends,omitempty"`
}

// ParsePayload turns raw payload text into a validated BrandPayload.
//
// JSON objects must carry the trend-capable required keys; a failure lists
// every missing field. A bare URL (the QR fallback of non-JSON codes) is
// accepted as a link-only payload that contributes no trends.
func ParsePayload(raw []byte) (*models.BrandPayload, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, &ValidationError{Errors: []string{"payload is empty"}}
	}

	// Re-parse into a raw key map first: validation must see which keys the
	// object actually carries, not what Go defaults filled in.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
			return &models.BrandPayload{EtsyPlannerURL: text}, nil
		}
		return nil, &ValidationError{Errors: []string{"payload must be a JSON object or a URL"}}
	}

	present := make(map[string]bool, len(keys))
	for k := range keys {
		present[k] = true
	}
	if err := validatePayloadKeys(present); err != nil {
		return nil, err
	}

	var payload models.BrandPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("payload schema: %v", err)}}
	}
	return &payload, nil
}

// ResolvePlatform picks the effective platform profile with the fallback
// chain requested > payload > default. Unsupported names never fail the
// request; they fall back to the default platform.
func ResolvePlatform(ctx context.Context, requested string, payload *models.BrandPayload, defaultPlatform string) models.PlatformProfile {
	name := requested
	if name == "" && payload != nil {
		name = payload.Platform
	}
	if name == "" {
		name = defaultPlatform
	}

	profile, err := planner.ResolvePlatform(name)
	if errors.Is(err, planner.ErrUnsupportedPlatform) {
		logging.Log(ctx).Layer("handlers").Op("ResolvePlatform").Platform(name).
			Warn("unsupported platform, falling back to default")
		profile, err = planner.ResolvePlatform(defaultPlatform)
	}
	if err != nil {
		// Misconfigured default; the fixed catalog always knows Instagram.
		profile, _ = planner.ResolvePlatform(planner.DefaultPlatform)
	}
	return profile
}

// GeneratePlan runs the full pipeline for one request: validate, collect
// trends, seed and build the 7-day plan. The same request always yields the
// byte-identical plan.
func GeneratePlan(ctx context.Context, req *PlanRequest, defaultPlatform string) (*models.WeeklyPlan, error) {
	if err := validate(func() string { return requireNonEmpty("week_of", req.WeekOf) }); err != nil {
		return nil, err
	}
	weekOf, err := time.Parse("2006-01-02", strings.TrimSpace(req.WeekOf))
	if err != nil {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("week_of must be an ISO date (YYYY-MM-DD): %v", err)}}
	}
	weekStart := planner.StartOfWeek(weekOf)

	var payload *models.BrandPayload
	if len(req.Payload) > 0 {
		payload, err = ParsePayload(req.Payload)
		if err != nil {
			return nil, err
		}
	}

	profile := ResolvePlatform(ctx, req.Platform, payload, defaultPlatform)

	var raw []string
	if payload != nil {
		raw = append(raw, payload.Trends...)
	}
	raw = append(raw, planner.SplitManualTrends(req.ManualTrends)...)
	if req.UseDemoTrends {
		// Keyed to the week start so the demo list is reproducible.
		raw = append(raw, planner.DemoTrends(weekStart)...)
	}
	set := planner.NormalizeTrends(raw, profile.HashtagLimit)

	seed := planner.Seed(planner.CanonicalPayload(req.Payload), weekStart)

	var brand *models.Brand
	if payload != nil {
		brand = payload.Brand
	}
	plan := planner.BuildWeeklyPlan(seed, set, profile, brand, weekStart)

	logging.Log(ctx).Layer("handlers").Op("GeneratePlan").
		Platform(profile.Name).Week(weekStart).
		Int("hashtags", len(set.Hashtags)).Int("phrases", len(set.Phrases)).
		Info("weekly plan generated")
	return &plan, nil
}
