package domain

// ============================================================
// Landing page content: static marketing copy
// ============================================================
//
// The mapstructure tags are lowercase because the catalog is decoded
// by viper, which folds keys to lower case.

// LandingContent is returned by GET /v1/content.
type LandingContent struct {
	Brand        Brand             `json:"brand" mapstructure:"brand"`
	Navigation   []NavLink         `json:"navigation" mapstructure:"navigation"`
	HeaderCTAs   []CallToAction    `json:"headerCtas" mapstructure:"header_ctas"`
	Hero         HeroSection       `json:"hero" mapstructure:"hero"`
	Features     SectionBlock      `json:"features" mapstructure:"features"`
	HowItWorks   SectionBlock      `json:"howItWorks" mapstructure:"how_it_works"`
	Testimonials TestimonialsBlock `json:"testimonials" mapstructure:"testimonials"`
	CTA          CTASection        `json:"cta" mapstructure:"cta"`
	Footer       Footer            `json:"footer" mapstructure:"footer"`
}

// Brand holds the product identity.
type Brand struct {
	Name    string `json:"name" mapstructure:"name"`
	Tagline string `json:"tagline" mapstructure:"tagline"`
}

// NavLink is an in-page anchor.
type NavLink struct {
	Label  string `json:"label" mapstructure:"label"`
	Anchor string `json:"anchor" mapstructure:"anchor"`
}

// CallToAction is a button. Intent, when set, is the session intent the
// client sends on click.
type CallToAction struct {
	Label  string `json:"label" mapstructure:"label"`
	Intent Intent `json:"intent,omitempty" mapstructure:"intent"`
	Anchor string `json:"anchor,omitempty" mapstructure:"anchor"`
}

// HeroSection is the top of the page.
type HeroSection struct {
	Badge       string         `json:"badge" mapstructure:"badge"`
	Headline    string         `json:"headline" mapstructure:"headline"`
	Highlight   string         `json:"highlight" mapstructure:"highlight"`
	Subheadline string         `json:"subheadline" mapstructure:"subheadline"`
	CTAs        []CallToAction `json:"ctas" mapstructure:"ctas"`
	Trust       []string       `json:"trust" mapstructure:"trust"`
	SavingsBox  []SavingsBox   `json:"savingsBoxes" mapstructure:"savings_boxes"`
}

// SavingsBox is a showcase card in the hero.
type SavingsBox struct {
	Title    string `json:"title" mapstructure:"title"`
	Amount   string `json:"amount" mapstructure:"amount"`
	Goal     string `json:"goal" mapstructure:"goal"`
	Progress int    `json:"progress" mapstructure:"progress"`
	Variant  string `json:"variant" mapstructure:"variant"`
	Locked   bool   `json:"locked" mapstructure:"locked"`
}

// SectionBlock is a titled list of items (features, steps).
type SectionBlock struct {
	Anchor      string        `json:"anchor,omitempty" mapstructure:"anchor"`
	Eyebrow     string        `json:"eyebrow" mapstructure:"eyebrow"`
	Title       string        `json:"title" mapstructure:"title"`
	Highlight   string        `json:"highlight" mapstructure:"highlight"`
	Description string        `json:"description" mapstructure:"description"`
	Items       []SectionItem `json:"items" mapstructure:"items"`
}

// SectionItem is one card of a SectionBlock.
type SectionItem struct {
	Number      string `json:"number,omitempty" mapstructure:"number"`
	Icon        string `json:"icon" mapstructure:"icon"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
}

// TestimonialsBlock lists customer quotes.
type TestimonialsBlock struct {
	Eyebrow     string        `json:"eyebrow" mapstructure:"eyebrow"`
	Title       string        `json:"title" mapstructure:"title"`
	Highlight   string        `json:"highlight" mapstructure:"highlight"`
	Description string        `json:"description" mapstructure:"description"`
	Items       []Testimonial `json:"items" mapstructure:"items"`
}

// Testimonial is a single quote.
type Testimonial struct {
	Name    string `json:"name" mapstructure:"name"`
	Role    string `json:"role" mapstructure:"role"`
	Content string `json:"content" mapstructure:"content"`
	Avatar  string `json:"avatar" mapstructure:"avatar"`
	Rating  int    `json:"rating" mapstructure:"rating"`
}

// CTASection is the closing call to action.
type CTASection struct {
	Headline    string       `json:"headline" mapstructure:"headline"`
	Subheadline string       `json:"subheadline" mapstructure:"subheadline"`
	Button      CallToAction `json:"button" mapstructure:"button"`
	TrustLine   string       `json:"trustLine" mapstructure:"trust_line"`
}

// Footer holds link columns and the legal line.
type Footer struct {
	About     string         `json:"about" mapstructure:"about"`
	Social    []string       `json:"social" mapstructure:"social"`
	Columns   []FooterColumn `json:"columns" mapstructure:"columns"`
	Copyright string         `json:"copyright" mapstructure:"copyright"`
}

// FooterColumn is a titled list of links.
type FooterColumn struct {
	Title string   `json:"title" mapstructure:"title"`
	Links []string `json:"links" mapstructure:"links"`
}
