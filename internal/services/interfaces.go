package services

import (
	"stockfinder/internal/dataset"
	"stockfinder/internal/models"
)

// AuthServicer defines the contract for the credential gate.
type AuthServicer interface {
	// Verify reports whether the submitted username/password pair matches
	// the reference mapping. It fails closed for unknown usernames and
	// retains neither credential after producing the result.
	Verify(username, password string) bool
}

// InsightServicer defines the contract for the instrument insights view.
type InsightServicer interface {
	InstrumentNames() []string
	Insights(name string) (*InstrumentInsights, error)
}

// Range is an inclusive [Min,Max] filter interval. Min==Max is a valid
// single-point filter.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the inclusive interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ScreenCriteria holds the sector selection and the five numeric range
// filters of a screener search. A row must satisfy every range to match.
type ScreenCriteria struct {
	Sectors         []string
	Price           Range
	PE              Range
	DividendYield   Range
	DebtToEquity    Range
	OperatingIncome Range
}

// Metric is a labeled scalar for the dashboard's metric strip. A nil value
// means the field is not reported for the instrument.
type Metric struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// InstrumentInsights is the full payload of the instrument insights view.
type InstrumentInsights struct {
	Name            string               `json:"name"`
	Metrics         []Metric             `json:"metrics"`
	Series          []models.AnnualPoint `json:"series"`
	Price           float64              `json:"price"`
	Currency        string               `json:"currency"`
	ExchangeCountry string               `json:"exchange_country"`
	Description     string               `json:"description"`
	Commentary      string               `json:"commentary"`
}

// RankedStock is one top-N screener result: the winning valuation-year row
// of an instrument plus its generated narrative.
type RankedStock struct {
	Rank      int                   `json:"rank"`
	Record    models.SecurityRecord `json:"record"`
	Narrative string                `json:"narrative"`
}

// ScreenResult is the outcome of a screener search. An empty Results slice
// is a valid outcome, reported through Notice rather than an error.
type ScreenResult struct {
	SectorNote string        `json:"sector_note"`
	Summary    string        `json:"summary"`
	Results    []RankedStock `json:"results"`
	Notice     string        `json:"notice,omitempty"`
}

// ScreenerOptions lists the selectable sectors (with the "All" sentinel
// first) and the global default bounds of each range filter.
type ScreenerOptions struct {
	Sectors []string       `json:"sectors"`
	Bounds  dataset.Bounds `json:"bounds"`
}

// ScreenerServicer defines the contract for the stock filter pipeline.
type ScreenerServicer interface {
	Options() ScreenerOptions
	FilterAndRank(criteria ScreenCriteria) (*ScreenResult, error)
}
