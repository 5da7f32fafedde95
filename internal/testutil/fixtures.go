// Package testutil provides test helpers for building fixture tables,
// writing dataset artifacts, and making assertions.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockfinder/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Float returns a pointer to v, for the nullable record fields.
func Float(v float64) *float64 {
	return &v
}

// Record builds a fully populated merged record for the given identity,
// fiscal year, sector, and price. Every other field gets a deterministic
// non-zero value so narrative substitution checks have something to find.
func Record(instrumentID, name, sector string, year int, price float64) models.SecurityRecord {
	return models.SecurityRecord{
		InstrumentID:      instrumentID,
		Name:              name,
		LongName:          name + " Corporation",
		Symbol:            instrumentID,
		ExchangeCountry:   "United States",
		Currency:          "USD",
		Price:             price,
		PE:                Float(12.5),
		PS:                Float(3.4),
		PB:                Float(2.1),
		EPS:               Float(6.72),
		DividendYield:     Float(1.8),
		DividendPerShare:  Float(0.96),
		URL:               fmt.Sprintf("https://example.com/%s", instrumentID),
		Year:              year,
		Sector:            sector,
		TotalRevenue:      394328000000,
		NetIncome:         96995000000,
		DebtToEquityRatio: 1.76,
		OperatingIncome:   114301000000,
		CashFlowOperating: 110543000000,
		Description:       fmt.Sprintf("%s builds things people buy.", name),
	}
}

// WriteDatasetArtifact writes a SQLite dataset artifact containing the given
// prices and fundamentals tables into a temp directory and returns its path.
func WriteDatasetArtifact(t *testing.T, prices []models.PriceRow, fundamentals []models.FundamentalsRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), fmt.Sprintf("dataset%d.db", nextID()))
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create dataset artifact: %v", err)
	}
	defer func() {
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			t.Fatalf("failed to get underlying DB: %v", dbErr)
		}
		if closeErr := sqlDB.Close(); closeErr != nil {
			t.Errorf("failed to close dataset artifact: %v", closeErr)
		}
	}()

	if err := db.AutoMigrate(&models.PriceRow{}, &models.FundamentalsRow{}); err != nil {
		t.Fatalf("failed to migrate dataset artifact: %v", err)
	}
	if len(prices) > 0 {
		if err := db.Create(&prices).Error; err != nil {
			t.Fatalf("failed to insert prices fixture: %v", err)
		}
	}
	if len(fundamentals) > 0 {
		if err := db.Create(&fundamentals).Error; err != nil {
			t.Fatalf("failed to insert fundamentals fixture: %v", err)
		}
	}
	return path
}

// PriceRowOf extracts the prices-table projection of a merged record.
func PriceRowOf(r models.SecurityRecord) models.PriceRow {
	return models.PriceRow{
		InstrumentID:     r.InstrumentID,
		Name:             r.Name,
		LongName:         r.LongName,
		Symbol:           r.Symbol,
		ExchangeCountry:  r.ExchangeCountry,
		Currency:         r.Currency,
		Price:            r.Price,
		PE:               r.PE,
		PS:               r.PS,
		PB:               r.PB,
		EPS:              r.EPS,
		DividendYield:    r.DividendYield,
		DividendPerShare: r.DividendPerShare,
		URL:              r.URL,
	}
}

// FundamentalsRowOf extracts the fundamentals-table projection of a merged record.
func FundamentalsRowOf(r models.SecurityRecord) models.FundamentalsRow {
	return models.FundamentalsRow{
		InstrumentID:      r.InstrumentID,
		Year:              r.Year,
		Sector:            r.Sector,
		TotalRevenue:      r.TotalRevenue,
		NetIncome:         r.NetIncome,
		DebtToEquityRatio: r.DebtToEquityRatio,
		OperatingIncome:   r.OperatingIncome,
		CashFlowOperating: r.CashFlowOperating,
		Description:       r.Description,
	}
}
