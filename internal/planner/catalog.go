package planner

import (
	"errors"
	"fmt"

	"github.com/entreplan/planner/internal/models"
)

// ErrUnsupportedPlatform is returned by ResolvePlatform for names outside the
// fixed platform set. Callers are expected to fall back to DefaultPlatform.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Supported platform names.
const (
	PlatformInstagram     = "Instagram"
	PlatformTikTok        = "TikTok"
	PlatformLinkedIn      = "LinkedIn"
	PlatformX             = "X (Twitter)"
	PlatformYouTubeShorts = "YouTube Shorts"
	PlatformFacebook      = "Facebook"
)

// DefaultPlatform is the fallback used when a requested platform is not supported.
const DefaultPlatform = PlatformInstagram

// defaultHashtagLimit applies to all platforms except LinkedIn, which allows one.
const defaultHashtagLimit = 3

// platformProfiles is the fixed, read-only platform table. Hints are stored
// without a trailing period; the fuser adds sentence punctuation.
var platformProfiles = []models.PlatformProfile{
	{Name: PlatformInstagram, Hint: "Use cozy, sensory language + 2–4 branded hashtags", HashtagLimit: defaultHashtagLimit},
	{Name: PlatformTikTok, Hint: "Open with a hook in 1 sentence; suggest a 7–12s shot list", HashtagLimit: defaultHashtagLimit},
	{Name: PlatformLinkedIn, Hint: "Lead with an insight; end with a thoughtful question", HashtagLimit: 1},
	{Name: PlatformX, Hint: "Short, punchy. 1 hook + 1 CTA + 1 hashtag", HashtagLimit: defaultHashtagLimit},
	{Name: PlatformYouTubeShorts, Hint: "One actionable takeaway + snappy CTA", HashtagLimit: defaultHashtagLimit},
	{Name: PlatformFacebook, Hint: "Friendly tone; invite comments or DMs", HashtagLimit: defaultHashtagLimit},
}

// promptTemplates is the fixed library of eight prompt categories.
var promptTemplates = []models.PromptTemplate{
	{Category: "Engagement", BaseText: "Write a fun and engaging question I can ask my audience to boost comments. I run a small coffee shop."},
	{Category: "Product Highlight", BaseText: "Create a short Instagram caption that highlights the benefits of my handmade candles. Make it cozy and inviting."},
	{Category: "Behind-the-Scenes", BaseText: "Generate a caption for a behind-the-scenes photo of me preparing orders in my Etsy shop."},
	{Category: "Customer Testimonial", BaseText: "Write a post using this customer review to build trust and encourage new buyers: ‘Loved the planner! It helped me stay organized all month.’"},
	{Category: "Storytelling", BaseText: "Tell a short story about why I started my jewelry business and how it connects to my passion for creativity."},
	{Category: "Promotion", BaseText: "Write a caption for a limited-time offer: 20% off all digital downloads this weekend. Make it urgent but friendly."},
	{Category: "Educational Tip", BaseText: "Create a tip-of-the-day post for a wellness coach about staying productive during the holidays."},
	{Category: "Holiday-Themed", BaseText: "Write a festive caption for a small business holiday post that thanks customers and shares a seasonal product."},
}

// automations is the fixed, read-only automation catalog.
var automations = []models.AutomationIdea{
	{Title: "Lead Capture → CRM", Idea: "Auto-push leads from website forms into your CRM and assign follow-ups.", Tools: "Zapier/Make; HubSpot/Pipedrive"},
	{Title: "DMs → Helpdesk", Idea: "Convert Instagram/FB DMs with keywords into support tickets or sales tasks.", Tools: "Zapier; Intercom/Help Scout"},
	{Title: "Content Calendar", Idea: "Queue posts for the week; auto-repurpose long posts to Shorts/Reels/Threads.", Tools: "Buffer/Later/Hootsuite; Repurpose.io"},
	{Title: "Invoice & Bookkeeping", Idea: "Auto-send invoices and sync payments to your books.", Tools: "QuickBooks/Xero; Stripe/Square"},
	{Title: "Meeting Scheduling", Idea: "Auto-route bookings and send reminders.", Tools: "Calendly/TidyCal; Google Calendar"},
	{Title: "Email Nurture", Idea: "Welcome new leads with a 5-email sequence; tag by interest.", Tools: "Mailchimp/Beehiiv; ConvertKit"},
	{Title: "Task Intake", Idea: "Turn form or email requests into tasks with due dates and owners.", Tools: "Asana/ClickUp; Zapier"},
	{Title: "Sales Pipeline Alerts", Idea: "Notify Slack when a deal moves stage or sits idle 7 days.", Tools: "Slack; HubSpot/Zapier"},
}

// weekdayTheme is one row of the fixed Monday-to-Sunday theme table.
type weekdayTheme struct {
	Label string
	Hook  string
}

var weekdayThemes = [7]weekdayTheme{
	{"Motivation Monday", "Share founder story or mission"},
	{"Tip Tuesday", "Quick, high-value tactical tip"},
	{"Win Wednesday", "Show progress / case study"},
	{"Tutorial Thursday", "Mini how-to with steps"},
	{"FAQ Friday", "Answer a common objection"},
	{"Social Proof Saturday", "Testimonial / UGC"},
	{"Planning Sunday", "Goals & CTA for next week"},
}

// Platforms returns a copy of the supported platform profiles in fixed order.
func Platforms() []models.PlatformProfile {
	out := make([]models.PlatformProfile, len(platformProfiles))
	copy(out, platformProfiles)
	return out
}

// Templates returns a copy of the eight prompt templates in fixed order.
func Templates() []models.PromptTemplate {
	out := make([]models.PromptTemplate, len(promptTemplates))
	copy(out, promptTemplates)
	return out
}

// Automations returns a copy of the automation catalog in fixed order.
func Automations() []models.AutomationIdea {
	out := make([]models.AutomationIdea, len(automations))
	copy(out, automations)
	return out
}

// ResolvePlatform maps a platform name to its profile. Unknown names return
// ErrUnsupportedPlatform wrapped with the offending name.
func ResolvePlatform(name string) (models.PlatformProfile, error) {
	for _, p := range platformProfiles {
		if p.Name == name {
			return p, nil
		}
	}
	return models.PlatformProfile{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, name)
}
