package planner

import (
	"strings"

	"github.com/entreplan/planner/internal/models"
)

// genericHint substitutes for a platform profile that carries no hint text.
const genericHint = "Keep it concise and conversational"

// FusePrompt composes the final prompt text for one template. Segments are
// joined with a single space, in this fixed order:
//
//  1. the template's base text;
//  2. "Platform: {name}. {hint}.";
//  3. "Trending to include: {hashtags}." — only when hashtags exist;
//  4. "I'm in {industry}|{niche}." — only when brand context exists.
//
// Omitted segments leave no stray separators. The output is a pure function
// of the inputs, byte-for-byte stable.
func FusePrompt(tmpl models.PromptTemplate, profile models.PlatformProfile, set models.TrendSet, brand *models.Brand) models.FusedPrompt {
	segments := make([]string, 0, 4)
	segments = append(segments, tmpl.BaseText)

	hint := profile.Hint
	if hint == "" {
		hint = genericHint
	}
	segments = append(segments, "Platform: "+profile.Name+". "+hint+".")

	if len(set.Hashtags) > 0 {
		segments = append(segments, "Trending to include: "+strings.Join(set.Hashtags, " ")+".")
	}

	if !brand.Empty() {
		parts := make([]string, 0, 2)
		if brand.Industry != "" {
			parts = append(parts, brand.Industry)
		}
		if brand.Niche != "" {
			parts = append(parts, brand.Niche)
		}
		segments = append(segments, "I'm in "+strings.Join(parts, "|")+".")
	}

	return models.FusedPrompt{
		Category: tmpl.Category,
		Platform: profile.Name,
		Text:     strings.Join(segments, " "),
	}
}
