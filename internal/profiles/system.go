package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/regpulse/regpulse/pkg/pagination"
)

// System provides read access to loaded company profiles.
type System interface {
	All() []Profile
	Find(ticker string) (*Profile, error)
	List(page pagination.PageRequest, search string) pagination.PageResult[Profile]
	Count() int
}

type system struct {
	profiles []Profile
	byTicker map[string]int
}

// record is one entry in the 10-K extraction output. Failed extractions
// carry success=false and no filing data.
type record struct {
	Ticker  string `json:"ticker"`
	Success bool   `json:"success"`
	Data    filing `json:"data"`
	Error   string `json:"error"`
}

// Load reads the 10-K extraction output and returns an immutable profile
// System. The file is a list of per-ticker records; failed extractions are
// skipped and duplicate tickers are rejected.
func Load(cfg Config) (System, error) {
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("read profile file %s: %w", cfg.Path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse profile file %s: %w", cfg.Path, err)
	}

	s := &system{byTicker: make(map[string]int, len(records))}
	for _, rec := range records {
		if !rec.Success {
			continue
		}

		ticker := strings.ToUpper(strings.TrimSpace(rec.Ticker))
		if ticker == "" {
			return nil, fmt.Errorf("profile file %s: %w", cfg.Path, ErrEmptyTicker)
		}
		if _, exists := s.byTicker[ticker]; exists {
			return nil, fmt.Errorf("profile file %s: %w: %s", cfg.Path, ErrDuplicateTicker, ticker)
		}

		s.byTicker[ticker] = len(s.profiles)
		s.profiles = append(s.profiles, rec.Data.format(ticker))
	}

	if len(s.profiles) == 0 {
		return nil, fmt.Errorf("profile file %s: %w", cfg.Path, ErrNoProfiles)
	}

	sort.Slice(s.profiles, func(i, j int) bool {
		return s.profiles[i].Ticker < s.profiles[j].Ticker
	})
	for i, p := range s.profiles {
		s.byTicker[p.Ticker] = i
	}

	return s, nil
}

func (s *system) All() []Profile {
	out := make([]Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

func (s *system) Find(ticker string) (*Profile, error) {
	i, ok := s.byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok {
		return nil, ErrNotFound
	}

	p := s.profiles[i]
	return &p, nil
}

func (s *system) Count() int {
	return len(s.profiles)
}

// List returns a page of profiles, optionally filtered by a case-insensitive
// search over ticker, company name, and sector.
func (s *system) List(page pagination.PageRequest, search string) pagination.PageResult[Profile] {
	matched := s.profiles
	if search != "" {
		needle := strings.ToLower(search)
		matched = nil
		for _, p := range s.profiles {
			if strings.Contains(strings.ToLower(p.Ticker), needle) ||
				strings.Contains(strings.ToLower(p.CompanyName), needle) ||
				strings.Contains(strings.ToLower(p.Sector), needle) {
				matched = append(matched, p)
			}
		}
	}

	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return pagination.NewPageResult(matched[start:end], len(matched), page.Page, page.PageSize)
}
