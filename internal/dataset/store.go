// Package dataset loads the merged price/fundamentals table backing the
// dashboard. The table is read once per process, is immutable afterwards,
// and every view works against the same in-memory slice.
package dataset

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "stockfinder/internal/errors"
	"stockfinder/internal/models"
)

// FieldBounds holds the global [min,max] of one screener field, computed
// over the entire table at load time. Rows where the field is null are
// skipped.
type FieldBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Bounds holds the global bounds of the five screener fields. These are the
// default criteria ranges: a slider the user never moves spans exactly one
// of these intervals.
type Bounds struct {
	Price           FieldBounds `json:"price"`
	PE              FieldBounds `json:"pe"`
	DividendYield   FieldBounds `json:"dividend_yield"`
	DebtToEquity    FieldBounds `json:"debt_to_equity"`
	OperatingIncome FieldBounds `json:"operating_income"`
}

// Store provides read-only access to the merged dataset.
type Store struct {
	path string

	once    sync.Once
	loadErr error

	records []models.SecurityRecord
	bounds  Bounds
	sectors []string
	names   []string
}

// NewStore creates a store backed by the SQLite dataset artifact at path.
// Nothing is read until Load is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewStoreFromRecords creates a fully loaded store from an in-memory table.
// Used by tests and anything else that already has merged records.
func NewStoreFromRecords(records []models.SecurityRecord) *Store {
	s := &Store{}
	s.once.Do(func() {
		s.records = records
		s.finalize()
	})
	return s
}

// Load reads the prices and fundamentals tables and inner-joins them on
// instrument_id. It runs at most once per store; repeated calls return the
// first outcome without touching the backing file again.
func (s *Store) Load() error {
	s.once.Do(func() {
		s.loadErr = s.load()
	})
	return s.loadErr
}

func (s *Store) load() error {
	if _, err := os.Stat(s.path); err != nil {
		return apperrors.Wrap(apperrors.ErrDatasetUnavailable, fmt.Errorf("dataset artifact %s: %w", s.path, err))
	}

	db, err := gorm.Open(sqlite.Open("file:"+s.path+"?mode=ro"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatasetUnavailable, err)
	}
	defer func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}()

	var prices []models.PriceRow
	if err := db.Find(&prices).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatasetUnavailable, err)
	}

	var fundamentals []models.FundamentalsRow
	if err := db.Find(&fundamentals).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrDatasetUnavailable, err)
	}

	// Inner join: fundamentals rows without a price row (and vice versa)
	// are dropped.
	byInstrument := make(map[string]models.PriceRow, len(prices))
	for _, p := range prices {
		byInstrument[p.InstrumentID] = p
	}

	records := make([]models.SecurityRecord, 0, len(fundamentals))
	for _, f := range fundamentals {
		p, ok := byInstrument[f.InstrumentID]
		if !ok {
			continue
		}
		records = append(records, models.Merge(p, f))
	}

	s.records = records
	s.finalize()
	return nil
}

// finalize computes the derived catalogs from the loaded records.
func (s *Store) finalize() {
	s.bounds = computeBounds(s.records)

	sectorSet := make(map[string]struct{})
	nameSet := make(map[string]struct{})
	for _, r := range s.records {
		sectorSet[r.Sector] = struct{}{}
		nameSet[r.Name] = struct{}{}
	}
	s.sectors = sortedKeys(sectorSet)
	s.names = sortedKeys(nameSet)
}

// Records returns the merged table. Callers must not mutate it.
func (s *Store) Records() []models.SecurityRecord { return s.records }

// Bounds returns the global screener field bounds.
func (s *Store) Bounds() Bounds { return s.bounds }

// Sectors returns the sorted sector catalog.
func (s *Store) Sectors() []string { return s.sectors }

// Names returns the sorted instrument display-name catalog.
func (s *Store) Names() []string { return s.names }

func computeBounds(records []models.SecurityRecord) Bounds {
	var price, pe, dy, de, oi []float64
	for _, r := range records {
		price = append(price, r.Price)
		if r.PE != nil {
			pe = append(pe, *r.PE)
		}
		if r.DividendYield != nil {
			dy = append(dy, *r.DividendYield)
		}
		de = append(de, r.DebtToEquityRatio)
		oi = append(oi, r.OperatingIncome)
	}
	return Bounds{
		Price:           fieldBounds(price),
		PE:              fieldBounds(pe),
		DividendYield:   fieldBounds(dy),
		DebtToEquity:    fieldBounds(de),
		OperatingIncome: fieldBounds(oi),
	}
}

func fieldBounds(values []float64) FieldBounds {
	if len(values) == 0 {
		return FieldBounds{}
	}
	return FieldBounds{Min: floats.Min(values), Max: floats.Max(values)}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
