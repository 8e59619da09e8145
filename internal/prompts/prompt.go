// Package prompts composes the impact-analysis prompt sent to the inference
// model for each regulation/company pair. Instructions and the response
// specification are fixed; the regulation and company profile sections vary
// per call.
package prompts

import (
	"fmt"
	"strings"

	"github.com/regpulse/regpulse/internal/profiles"
)

// Regulation carries the document fields included in the prompt.
type Regulation struct {
	Name         string
	Requirements string
}

// maxRequirementRunes bounds the regulation text embedded in the prompt so
// a large document cannot blow the model's context window.
const maxRequirementRunes = 12000

// Compose builds the full impact-analysis prompt for one company.
func Compose(reg Regulation, p profiles.Profile) string {
	var sb strings.Builder

	sb.WriteString(analysisInstructions)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "REGULATION:\nName: %s\nKey Requirements: %s\n\n",
		fallback(reg.Name, "Unknown"),
		fallback(truncate(reg.Requirements), "Not specified"),
	)

	fmt.Fprintf(&sb,
		"COMPANY PROFILE:\nName: %s (%s)\nSector: %s\nGeographic Exposure: %s\nBusiness Mix: %s\nSupply Chain: %s\nR&D Spending: %s\n\n",
		p.CompanyName, p.Ticker, p.Sector, p.Geography,
		p.BusinessMix, p.SupplyChain, p.RAndD,
	)

	sb.WriteString(analysisSpec)

	return sb.String()
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxRequirementRunes {
		return s
	}
	return string(runes[:maxRequirementRunes])
}
