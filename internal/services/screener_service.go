package services

import (
	"fmt"
	"sort"
	"strings"

	"stockfinder/internal/dataset"
	apperrors "stockfinder/internal/errors"
	"stockfinder/internal/models"
)

// AllSectors is the sentinel sector selection that disables the sector
// filter. An empty selection behaves the same way.
const AllSectors = "All"

// topN is how many deduplicated rows a search returns.
const topN = 5

// noMatchNotice is the user-facing message for an empty result set.
const noMatchNotice = "No stocks found matching the selected criteria."

// screenerService implements the filter-rank-narrate pipeline. The pipeline
// is a pure function of the immutable table and the submitted criteria:
// identical inputs always produce identical ordered results.
type screenerService struct {
	store *dataset.Store

	// valuationYear pins results to the fiscal year treated as the
	// canonical valuation snapshot.
	valuationYear int
}

// NewScreenerService creates a new ScreenerServicer over the dataset store.
func NewScreenerService(store *dataset.Store, valuationYear int) ScreenerServicer {
	return &screenerService{store: store, valuationYear: valuationYear}
}

// Options returns the selectable sectors, with the "All" sentinel first,
// and the global default bounds for each range filter. Bounds are fixed at
// load time and computed over the entire table, never a sector subset.
func (s *screenerService) Options() ScreenerOptions {
	sectors := append([]string{AllSectors}, s.store.Sectors()...)
	return ScreenerOptions{Sectors: sectors, Bounds: s.store.Bounds()}
}

// FilterAndRank runs the pipeline: sector filter, five AND-ed inclusive
// range predicates, valuation-year pin, price-descending sort, first-
// occurrence dedup per instrument, top-5 cut, and narrative generation.
// Zero survivors is a valid empty outcome, not an error.
func (s *screenerService) FilterAndRank(criteria ScreenCriteria) (*ScreenResult, error) {
	if err := s.validate(criteria); err != nil {
		return nil, err
	}

	keepAll := len(criteria.Sectors) == 0
	sectorSet := make(map[string]struct{}, len(criteria.Sectors))
	for _, sector := range criteria.Sectors {
		if sector == AllSectors {
			keepAll = true
		}
		sectorSet[sector] = struct{}{}
	}

	var matched []models.SecurityRecord
	for _, r := range s.store.Records() {
		if !keepAll {
			if _, ok := sectorSet[r.Sector]; !ok {
				continue
			}
		}
		if !matchesRanges(r, criteria) {
			continue
		}
		// Only the valuation year counts as the current snapshot; an
		// instrument with no row in that year drops out here.
		if r.Year != s.valuationYear {
			continue
		}
		matched = append(matched, r)
	}

	// Stable sort keeps table order for equal prices, so results are
	// deterministic for identical inputs.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Price > matched[j].Price
	})

	// First occurrence wins per instrument: after the sort that is the
	// highest-priced surviving row.
	seen := make(map[string]struct{}, len(matched))
	results := make([]RankedStock, 0, topN)
	for _, r := range matched {
		if _, ok := seen[r.InstrumentID]; ok {
			continue
		}
		seen[r.InstrumentID] = struct{}{}
		results = append(results, RankedStock{
			Rank:      len(results) + 1,
			Record:    r,
			Narrative: Narrative(r),
		})
		if len(results) == topN {
			break
		}
	}

	result := &ScreenResult{
		SectorNote: sectorNote(criteria.Sectors, keepAll),
		Summary:    filterSummary(criteria),
		Results:    results,
	}
	if len(results) == 0 {
		result.Notice = noMatchNotice
	}
	return result, nil
}

// validate rejects malformed criteria before the pipeline runs. The binding
// layer already rejects inverted ranges; the service re-checks so the
// pipeline contract holds for direct callers too. Sectors are not validated:
// a selection matching no row is a valid empty outcome, not an error.
func (s *screenerService) validate(criteria ScreenCriteria) error {
	for _, r := range []Range{criteria.Price, criteria.PE, criteria.DividendYield, criteria.DebtToEquity, criteria.OperatingIncome} {
		if r.Min > r.Max {
			return apperrors.ErrInvalidRange
		}
	}
	return nil
}

// matchesRanges applies the five inclusive range predicates. A row fails as
// soon as one predicate fails. A null field value never matches its
// predicate, mirroring the bounds computation which skips null values.
func matchesRanges(r models.SecurityRecord, c ScreenCriteria) bool {
	if !c.Price.Contains(r.Price) {
		return false
	}
	if r.PE == nil || !c.PE.Contains(*r.PE) {
		return false
	}
	if r.DividendYield == nil || !c.DividendYield.Contains(*r.DividendYield) {
		return false
	}
	if !c.DebtToEquity.Contains(r.DebtToEquityRatio) {
		return false
	}
	return c.OperatingIncome.Contains(r.OperatingIncome)
}

// sectorNote echoes the sector selection back to the user.
func sectorNote(sectors []string, keepAll bool) string {
	if keepAll {
		return "You have selected stocks from all sectors."
	}
	return fmt.Sprintf("You have selected stocks from the following sectors: %s.", strings.Join(sectors, ", "))
}

// filterSummary echoes the applied criteria back to the user.
func filterSummary(c ScreenCriteria) string {
	return fmt.Sprintf("With a price range from %s to %s, "+
		"a P/E Ratio from %s to %s, "+
		"a Dividend Yield from %s to %s, "+
		"a Debt-to-Equity Ratio from %s to %s, and "+
		"an Operating Income from %s to %s.",
		money(c.Price.Min), money(c.Price.Max),
		ratio(c.PE.Min), ratio(c.PE.Max),
		ratio(c.DividendYield.Min), ratio(c.DividendYield.Max),
		ratio(c.DebtToEquity.Min), ratio(c.DebtToEquity.Max),
		money(c.OperatingIncome.Min), money(c.OperatingIncome.Max))
}
