package profiles_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/regpulse/regpulse/internal/profiles"
	"github.com/regpulse/regpulse/pkg/pagination"
)

const sampleProfiles = `[
  {
    "ticker": "AAPL",
    "success": true,
    "data": {
      "identity_and_jurisdiction": {
        "company_name": "Apple Inc.",
        "sector_industry": "Technology Hardware"
      },
      "geographic_exposure": {
        "americas_revenue_share_prct_2024": 42.7,
        "europe_revenue_share_prct_2024": 25.9,
        "china_revenue_share_prct_2024": 17.1
      },
      "business_mix": {
        "goods_revenue_usd": 294866000000,
        "services_revenue_usd": 96169000000
      },
      "supply_chain_and_commitments": {
        "suppliers_sector_industries": [
          "Semiconductors", "Display Panels", "Precision Components", "Logistics"
        ]
      },
      "tax_and_innovation": {
        "r_and_d_expense_usd": 31370000000
      }
    }
  },
  {
    "ticker": "XOM",
    "success": true,
    "data": {
      "identity_and_jurisdiction": {
        "company_name": "Exxon Mobil",
        "sector_industry": "Energy"
      }
    }
  },
  {
    "ticker": "TSLA",
    "success": false,
    "error": "extraction failed"
  }
]`

func writeProfileFile(t *testing.T, content string) profiles.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "company_10k_data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile file: %v", err)
	}

	return profiles.Config{Path: path}
}

func TestLoad(t *testing.T) {
	t.Run("formats filing fields", func(t *testing.T) {
		sys, err := profiles.Load(writeProfileFile(t, sampleProfiles))
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if sys.Count() != 2 {
			t.Fatalf("expected 2 profiles, got %d", sys.Count())
		}

		p, err := sys.Find("aapl")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}

		if p.CompanyName != "Apple Inc." || p.Sector != "Technology Hardware" {
			t.Errorf("unexpected identity: %+v", p)
		}
		if p.Geography != "Americas: 42.7%, Europe: 25.9%, China: 17.1%" {
			t.Errorf("unexpected geography: %q", p.Geography)
		}
		if p.BusinessMix != "Goods: $294.9B, Services: $96.2B" {
			t.Errorf("unexpected business mix: %q", p.BusinessMix)
		}
		if p.SupplyChain != "Semiconductors, Display Panels, Precision Components" {
			t.Errorf("expected first 3 suppliers, got %q", p.SupplyChain)
		}
		if p.RAndD != "$31.4B" {
			t.Errorf("unexpected r&d: %q", p.RAndD)
		}
	})

	t.Run("undisclosed fields", func(t *testing.T) {
		sys, err := profiles.Load(writeProfileFile(t, sampleProfiles))
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		p, err := sys.Find("XOM")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}

		for _, field := range []string{p.Geography, p.BusinessMix, p.SupplyChain, p.RAndD} {
			if field != "Not disclosed" {
				t.Errorf("expected undisclosed field, got %q", field)
			}
		}
	})

	t.Run("skips failed extraction records", func(t *testing.T) {
		sys, err := profiles.Load(writeProfileFile(t, sampleProfiles))
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if _, err := sys.Find("TSLA"); !errors.Is(err, profiles.ErrNotFound) {
			t.Errorf("failed record should not load, got %v", err)
		}
	})

	t.Run("rejects duplicate tickers", func(t *testing.T) {
		dup := `[
			{"ticker": "aapl", "success": true, "data": {}},
			{"ticker": "AAPL", "success": true, "data": {}}
		]`
		_, err := profiles.Load(writeProfileFile(t, dup))
		if !errors.Is(err, profiles.ErrDuplicateTicker) {
			t.Errorf("expected ErrDuplicateTicker, got %v", err)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := profiles.Load(profiles.Config{Path: "does/not/exist.json"})
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("empty file is an error", func(t *testing.T) {
		_, err := profiles.Load(writeProfileFile(t, `[]`))
		if !errors.Is(err, profiles.ErrNoProfiles) {
			t.Errorf("expected ErrNoProfiles, got %v", err)
		}
	})

	t.Run("all records failed is an error", func(t *testing.T) {
		failed := `[{"ticker": "AAPL", "success": false, "error": "extraction failed"}]`
		_, err := profiles.Load(writeProfileFile(t, failed))
		if !errors.Is(err, profiles.ErrNoProfiles) {
			t.Errorf("expected ErrNoProfiles, got %v", err)
		}
	})

	t.Run("find unknown ticker", func(t *testing.T) {
		sys, err := profiles.Load(writeProfileFile(t, sampleProfiles))
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if _, err := sys.Find("MSFT"); !errors.Is(err, profiles.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestList(t *testing.T) {
	sys, err := profiles.Load(writeProfileFile(t, sampleProfiles))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	page := pagination.PageRequest{Page: 1, PageSize: 10}

	t.Run("all profiles sorted by ticker", func(t *testing.T) {
		result := sys.List(page, "")
		if result.Total != 2 || len(result.Data) != 2 {
			t.Fatalf("unexpected result: %+v", result)
		}
		if result.Data[0].Ticker != "AAPL" || result.Data[1].Ticker != "XOM" {
			t.Errorf("expected ticker order AAPL, XOM: %+v", result.Data)
		}
	})

	t.Run("search by sector", func(t *testing.T) {
		result := sys.List(page, "energy")
		if result.Total != 1 || result.Data[0].Ticker != "XOM" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("page beyond range", func(t *testing.T) {
		result := sys.List(pagination.PageRequest{Page: 5, PageSize: 10}, "")
		if len(result.Data) != 0 || result.Total != 2 {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}
