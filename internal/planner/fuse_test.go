package planner

import (
	"strings"
	"testing"

	"github.com/entreplan/planner/internal/models"
)

func TestFusePrompt_SegmentRules(t *testing.T) {
	engagement := Templates()[0]
	instagram, _ := ResolvePlatform(PlatformInstagram)

	tests := []struct {
		name        string
		set         models.TrendSet
		brand       *models.Brand
		wantTrends  bool
		wantBrand   bool
		brandSubstr string
	}{
		{
			name: "no trends no brand",
		},
		{
			name:       "hashtags produce trending segment",
			set:        models.TrendSet{Hashtags: []string{"#ShopLocal", "#CustomerLove"}},
			wantTrends: true,
		},
		{
			name: "phrases alone produce no trending segment",
			set:  models.TrendSet{Phrases: []string{"cozy vibes"}},
		},
		{
			name:        "industry only",
			brand:       &models.Brand{Industry: "coffee"},
			wantBrand:   true,
			brandSubstr: "I'm in coffee.",
		},
		{
			name:        "niche only",
			brand:       &models.Brand{Niche: "espresso gear"},
			wantBrand:   true,
			brandSubstr: "I'm in espresso gear.",
		},
		{
			name:        "industry and niche joined by pipe",
			brand:       &models.Brand{Industry: "coffee", Niche: "espresso gear"},
			wantBrand:   true,
			brandSubstr: "I'm in coffee|espresso gear.",
		},
		{
			name:  "empty brand struct treated as absent",
			brand: &models.Brand{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FusePrompt(engagement, instagram, tt.set, tt.brand)

			if !strings.HasPrefix(got.Text, engagement.BaseText) {
				t.Errorf("fused text does not start with base text: %q", got.Text)
			}
			if !strings.Contains(got.Text, "Platform: Instagram.") {
				t.Errorf("fused text missing platform segment: %q", got.Text)
			}
			if gotTrends := strings.Contains(got.Text, "Trending to include:"); gotTrends != tt.wantTrends {
				t.Errorf("trending segment present=%v, want %v: %q", gotTrends, tt.wantTrends, got.Text)
			}
			if gotBrand := strings.Contains(got.Text, "I'm in"); gotBrand != tt.wantBrand {
				t.Errorf("brand segment present=%v, want %v: %q", gotBrand, tt.wantBrand, got.Text)
			}
			if tt.brandSubstr != "" && !strings.Contains(got.Text, tt.brandSubstr) {
				t.Errorf("fused text missing %q: %q", tt.brandSubstr, got.Text)
			}
			if strings.Contains(got.Text, "  ") {
				t.Errorf("fused text has stray double spaces: %q", got.Text)
			}
		})
	}
}

func TestFusePrompt_ExactComposition(t *testing.T) {
	engagement := Templates()[0]
	linkedin, _ := ResolvePlatform(PlatformLinkedIn)
	set := NormalizeTrends([]string{"#A", "#A", "b", "#C", "#D"}, linkedin.HashtagLimit)

	got := FusePrompt(engagement, linkedin, set, nil)

	wantSuffix := "Platform: LinkedIn. Lead with an insight; end with a thoughtful question. Trending to include: #A."
	if !strings.HasSuffix(got.Text, wantSuffix) {
		t.Errorf("fused text does not end with %q:\n%q", wantSuffix, got.Text)
	}
	if got.Category != "Engagement" {
		t.Errorf("expected category Engagement, got %s", got.Category)
	}
	if got.Platform != PlatformLinkedIn {
		t.Errorf("expected platform LinkedIn, got %s", got.Platform)
	}
}

func TestFusePrompt_Deterministic(t *testing.T) {
	tmpl := Templates()[4]
	tiktok, _ := ResolvePlatform(PlatformTikTok)
	set := models.TrendSet{Hashtags: []string{"#TipTuesday"}, Phrases: []string{"behind the scenes"}}
	brand := &models.Brand{Industry: "wellness"}

	first := FusePrompt(tmpl, tiktok, set, brand)
	second := FusePrompt(tmpl, tiktok, set, brand)

	if first.Text != second.Text {
		t.Errorf("fusion not byte-stable:\n%q\n%q", first.Text, second.Text)
	}
}

func TestFusePrompt_GenericHintFallback(t *testing.T) {
	tmpl := Templates()[0]
	bare := models.PlatformProfile{Name: "Instagram", HashtagLimit: 3}

	got := FusePrompt(tmpl, bare, models.TrendSet{}, nil)

	if !strings.Contains(got.Text, "Platform: Instagram. "+genericHint+".") {
		t.Errorf("expected generic hint fallback, got %q", got.Text)
	}
}
