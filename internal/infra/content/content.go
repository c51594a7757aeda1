// Package content serves the static copy of the landing page from an
// embedded YAML catalog.
package content

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"

	"github.com/spf13/viper"
)

//go:embed landing.yaml
var landingYAML []byte

// Catalog is an immutable, pre-decoded landing page.
type Catalog struct {
	landing *domain.LandingContent
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	return Decode(bytes.NewReader(landingYAML))
}

// Decode reads a YAML catalog from r.
func Decode(r io.Reader) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read landing catalog: %w", err)
	}

	var c domain.LandingContent
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal landing catalog: %w", err)
	}
	if c.Brand.Name == "" {
		return nil, fmt.Errorf("landing catalog: brand.name is required")
	}
	for _, cta := range allCTAs(&c) {
		if cta.Intent != "" && !knownIntent(cta.Intent) {
			return nil, fmt.Errorf("landing catalog: unknown intent %q on %q", cta.Intent, cta.Label)
		}
	}
	return &Catalog{landing: &c}, nil
}

// Landing implements port.ContentProvider.
func (c *Catalog) Landing(_ context.Context) (*domain.LandingContent, error) {
	return c.landing, nil
}

func allCTAs(c *domain.LandingContent) []domain.CallToAction {
	out := append([]domain.CallToAction{}, c.HeaderCTAs...)
	out = append(out, c.Hero.CTAs...)
	return append(out, c.CTA.Button)
}

func knownIntent(i domain.Intent) bool {
	switch i {
	case domain.IntentOpenSignup, domain.IntentOpenLogin, domain.IntentOpenWalletModal,
		domain.IntentOpenForgotPassword, domain.IntentSwitchToLogin, domain.IntentSwitchToSignup,
		domain.IntentSwitchToForgotPassword, domain.IntentCloseAll:
		return true
	}
	return false
}
