package prompts_test

import (
	"strings"
	"testing"

	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/internal/prompts"
)

func sampleProfile() profiles.Profile {
	return profiles.Profile{
		Ticker:      "AAPL",
		CompanyName: "Apple Inc.",
		Sector:      "Technology Hardware",
		Geography:   "Americas: 42.7%, Europe: 25.9%, China: 17.1%",
		BusinessMix: "Goods: $294.9B, Services: $96.2B",
		SupplyChain: "Semiconductors, Electronic Components, Display Technology",
		RAndD:       "$31.4B",
	}
}

func TestCompose(t *testing.T) {
	reg := prompts.Regulation{
		Name:         "EU Energy Efficiency Directive",
		Requirements: "Member states shall reduce energy consumption by 11.7% by 2030.",
	}

	prompt := prompts.Compose(reg, sampleProfile())

	sections := []string{
		"financial analyst",
		"REGULATION:",
		"Name: EU Energy Efficiency Directive",
		"Key Requirements: Member states shall reduce energy consumption",
		"COMPANY PROFILE:",
		"Name: Apple Inc. (AAPL)",
		"Sector: Technology Hardware",
		"Geographic Exposure: Americas: 42.7%, Europe: 25.9%, China: 17.1%",
		"Business Mix: Goods: $294.9B, Services: $96.2B",
		"Supply Chain: Semiconductors, Electronic Components, Display Technology",
		"R&D Spending: $31.4B",
		"impact_score",
	}

	for _, s := range sections {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt missing %q", s)
		}
	}

	if idx := strings.Index(prompt, "REGULATION:"); idx > strings.Index(prompt, "COMPANY PROFILE:") {
		t.Error("regulation section must precede company profile")
	}
}

func TestComposeFallbacks(t *testing.T) {
	prompt := prompts.Compose(prompts.Regulation{}, sampleProfile())

	if !strings.Contains(prompt, "Name: Unknown") {
		t.Error("empty regulation name should fall back to Unknown")
	}
	if !strings.Contains(prompt, "Key Requirements: Not specified") {
		t.Error("empty requirements should fall back to Not specified")
	}
}

func TestComposeTruncatesRequirements(t *testing.T) {
	long := strings.Repeat("条", 20000)
	reg := prompts.Regulation{Name: "能源法", Requirements: long}

	prompt := prompts.Compose(reg, sampleProfile())

	if strings.Contains(prompt, long) {
		t.Error("requirements should be truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("条", 12000)) {
		t.Error("truncation should keep the first 12000 runes intact")
	}
}
