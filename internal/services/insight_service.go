package services

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"stockfinder/internal/dataset"
	apperrors "stockfinder/internal/errors"
	"stockfinder/internal/models"
)

// insightService computes the per-instrument metrics and trend view.
type insightService struct {
	store *dataset.Store
}

// NewInsightService creates a new InsightServicer over the dataset store.
func NewInsightService(store *dataset.Store) InsightServicer {
	return &insightService{store: store}
}

// InstrumentNames returns the sorted display-name catalog offered by the UI.
func (s *insightService) InstrumentNames() []string {
	return s.store.Names()
}

// Insights selects the instrument's rows by display name, takes the most
// recent year's row as the point-in-time snapshot, and aggregates the
// fiscal-year rows into four trend series.
func (s *insightService) Insights(name string) (*InstrumentInsights, error) {
	var rows []models.SecurityRecord
	for _, r := range s.store.Records() {
		if r.Name == name {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		// The UI only offers names present in the table, so this is a
		// recoverable local condition rather than a crash.
		return nil, apperrors.ErrInstrumentNotFound
	}

	snapshot := rows[0]
	for _, r := range rows {
		if r.Year > snapshot.Year {
			snapshot = r
		}
	}

	return &InstrumentInsights{
		Name: name,
		Metrics: []Metric{
			{Label: "PE Ratio", Value: snapshot.PE},
			{Label: "PS Ratio", Value: snapshot.PS},
			{Label: "EPS", Value: snapshot.EPS},
			{Label: "PB Ratio", Value: snapshot.PB},
			{Label: "Dividend Yield", Value: snapshot.DividendYield},
		},
		Series:          annualSeries(rows),
		Price:           snapshot.Price,
		Currency:        snapshot.Currency,
		ExchangeCountry: snapshot.ExchangeCountry,
		Description:     snapshot.Description,
		Commentary: fmt.Sprintf("This presents the most recent trading price for %s and the primary "+
			"country where it is traded. Understanding the current price in relation to historical "+
			"trends can offer insights into potential market movements and the intrinsic value of "+
			"the instrument.", name),
	}, nil
}

// annualSeries groups an instrument's rows by fiscal year, summing revenue,
// net income, and operating cash flow and averaging the debt-to-equity
// ratio. Points come back in ascending year order.
func annualSeries(rows []models.SecurityRecord) []models.AnnualPoint {
	byYear := make(map[int][]models.SecurityRecord)
	for _, r := range rows {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	series := make([]models.AnnualPoint, 0, len(years))
	for _, y := range years {
		point := models.AnnualPoint{Year: y}
		var ratios []float64
		for _, r := range byYear[y] {
			point.TotalRevenue += r.TotalRevenue
			point.NetIncome += r.NetIncome
			point.CashFlowOperating += r.CashFlowOperating
			ratios = append(ratios, r.DebtToEquityRatio)
		}
		point.DebtToEquityRatio = stat.Mean(ratios, nil)
		series = append(series, point)
	}
	return series
}
