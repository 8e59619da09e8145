// Package profiles serves read-only company reference data extracted from
// 10-K filings. Profiles load once at startup from a flat JSON file and are
// formatted into prompt-ready strings for impact analysis.
package profiles

import (
	"fmt"
	"strings"
)

// Profile is a company viewed through the fields impact analysis cares
// about. String fields are pre-formatted for prompt composition.
type Profile struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Geography   string `json:"geography"`
	BusinessMix string `json:"business_mix"`
	SupplyChain string `json:"supply_chain"`
	RAndD       string `json:"r_and_d"`
}

// filing mirrors the nested data object of one 10-K extraction record.
type filing struct {
	Identity struct {
		CompanyName    string `json:"company_name"`
		SectorIndustry string `json:"sector_industry"`
	} `json:"identity_and_jurisdiction"`
	Geographic struct {
		Americas   float64 `json:"americas_revenue_share_prct_2024"`
		Europe     float64 `json:"europe_revenue_share_prct_2024"`
		China      float64 `json:"china_revenue_share_prct_2024"`
		Japan      float64 `json:"japan_revenue_share_prct_2024"`
		RestOfAsia float64 `json:"restofasia_revenue_share_prct_2024"`
	} `json:"geographic_exposure"`
	BusinessMix struct {
		GoodsRevenueUSD     float64 `json:"goods_revenue_usd"`
		ServicesRevenueUSD  float64 `json:"services_revenue_usd"`
		FinancialRevenueUSD float64 `json:"financial_revenue_usd"`
	} `json:"business_mix"`
	SupplyChain struct {
		SuppliersSectorIndustries []string `json:"suppliers_sector_industries"`
	} `json:"supply_chain_and_commitments"`
	TaxAndInnovation struct {
		RAndDExpenseUSD float64 `json:"r_and_d_expense_usd"`
	} `json:"tax_and_innovation"`
}

const notDisclosed = "Not disclosed"

// format flattens a raw filing into a prompt-ready Profile.
func (f *filing) format(ticker string) Profile {
	p := Profile{
		Ticker:      ticker,
		CompanyName: f.Identity.CompanyName,
		Sector:      f.Identity.SectorIndustry,
	}

	if p.CompanyName == "" {
		p.CompanyName = "Unknown"
	}
	if p.Sector == "" {
		p.Sector = "Unknown"
	}

	p.Geography = formatGeography(f)
	p.BusinessMix = formatBusinessMix(f)
	p.SupplyChain = formatSupplyChain(f)
	p.RAndD = formatRAndD(f)

	return p
}

func formatGeography(f *filing) string {
	regions := []struct {
		name  string
		share float64
	}{
		{"Americas", f.Geographic.Americas},
		{"Europe", f.Geographic.Europe},
		{"China", f.Geographic.China},
		{"Japan", f.Geographic.Japan},
		{"Rest of Asia", f.Geographic.RestOfAsia},
	}

	var parts []string
	for _, r := range regions {
		if r.share != 0 {
			parts = append(parts, fmt.Sprintf("%s: %v%%", r.name, r.share))
		}
	}

	if len(parts) == 0 {
		return notDisclosed
	}
	return strings.Join(parts, ", ")
}

func formatBusinessMix(f *filing) string {
	var parts []string
	if f.BusinessMix.GoodsRevenueUSD != 0 {
		parts = append(parts, fmt.Sprintf("Goods: $%.1fB", f.BusinessMix.GoodsRevenueUSD/1e9))
	}
	if f.BusinessMix.ServicesRevenueUSD != 0 {
		parts = append(parts, fmt.Sprintf("Services: $%.1fB", f.BusinessMix.ServicesRevenueUSD/1e9))
	}
	if f.BusinessMix.FinancialRevenueUSD != 0 {
		parts = append(parts, fmt.Sprintf("Financial: $%.1fB", f.BusinessMix.FinancialRevenueUSD/1e9))
	}

	if len(parts) == 0 {
		return notDisclosed
	}
	return strings.Join(parts, ", ")
}

func formatSupplyChain(f *filing) string {
	suppliers := f.SupplyChain.SuppliersSectorIndustries
	if len(suppliers) == 0 {
		return notDisclosed
	}
	if len(suppliers) > 3 {
		suppliers = suppliers[:3]
	}
	return strings.Join(suppliers, ", ")
}

func formatRAndD(f *filing) string {
	if f.TaxAndInnovation.RAndDExpenseUSD == 0 {
		return notDisclosed
	}
	return fmt.Sprintf("$%.1fB", f.TaxAndInnovation.RAndDExpenseUSD/1e9)
}
