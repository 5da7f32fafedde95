package models

// PriceRow is one row of the prices table in the dataset artifact. Price and
// identity fields are instrument-level attributes: the same values repeat on
// every fiscal-year row of a security after the merge.
type PriceRow struct {
	InstrumentID     string   `gorm:"column:instrument_id" json:"instrument_id"`
	Name             string   `gorm:"column:name" json:"name"`
	LongName         string   `gorm:"column:long_name" json:"long_name"`
	Symbol           string   `gorm:"column:symbol" json:"symbol"`
	ExchangeCountry  string   `gorm:"column:exchange_country" json:"exchange_country"`
	Currency         string   `gorm:"column:currency" json:"currency"`
	Price            float64  `gorm:"column:price" json:"price"`
	PE               *float64 `gorm:"column:pe" json:"pe,omitempty"`
	PS               *float64 `gorm:"column:ps" json:"ps,omitempty"`
	PB               *float64 `gorm:"column:pb" json:"pb,omitempty"`
	EPS              *float64 `gorm:"column:eps" json:"eps,omitempty"`
	DividendYield    *float64 `gorm:"column:dividend_yield" json:"dividend_yield,omitempty"`
	DividendPerShare *float64 `gorm:"column:dividend_per_share" json:"dividend_per_share,omitempty"`
	URL              string   `gorm:"column:url" json:"url"`
}

// TableName overrides the GORM table name.
func (PriceRow) TableName() string { return "prices" }

// FundamentalsRow is one row of the fundamentals table: a fiscal-year
// snapshot of a security's financials.
type FundamentalsRow struct {
	InstrumentID      string  `gorm:"column:instrument_id" json:"instrument_id"`
	Year              int     `gorm:"column:year" json:"year"`
	Sector            string  `gorm:"column:sectorL1" json:"sector"`
	TotalRevenue      float64 `gorm:"column:totalRevenue" json:"total_revenue"`
	NetIncome         float64 `gorm:"column:netIncome" json:"net_income"`
	DebtToEquityRatio float64 `gorm:"column:debtToEquityRatio" json:"debt_to_equity_ratio"`
	OperatingIncome   float64 `gorm:"column:operatingIncome" json:"operating_income"`
	CashFlowOperating float64 `gorm:"column:cashFlowOperating" json:"cash_flow_operating"`
	Description       string  `gorm:"column:description" json:"description"`
}

// TableName overrides the GORM table name.
func (FundamentalsRow) TableName() string { return "fundamentals" }

// SecurityRecord is one row of the merged table: a price row inner-joined
// with one fiscal-year fundamentals row. InstrumentID+Year is the natural
// key; a security has one record per fiscal year.
type SecurityRecord struct {
	InstrumentID     string   `json:"instrument_id"`
	Name             string   `json:"name"`
	LongName         string   `json:"long_name"`
	Symbol           string   `json:"symbol"`
	ExchangeCountry  string   `json:"exchange_country"`
	Currency         string   `json:"currency"`
	Price            float64  `json:"price"`
	PE               *float64 `json:"pe,omitempty"`
	PS               *float64 `json:"ps,omitempty"`
	PB               *float64 `json:"pb,omitempty"`
	EPS              *float64 `json:"eps,omitempty"`
	DividendYield    *float64 `json:"dividend_yield,omitempty"`
	DividendPerShare *float64 `json:"dividend_per_share,omitempty"`
	URL              string   `json:"url"`

	Year              int     `json:"year"`
	Sector            string  `json:"sector"`
	TotalRevenue      float64 `json:"total_revenue"`
	NetIncome         float64 `json:"net_income"`
	DebtToEquityRatio float64 `json:"debt_to_equity_ratio"`
	OperatingIncome   float64 `json:"operating_income"`
	CashFlowOperating float64 `json:"cash_flow_operating"`
	Description       string  `json:"description"`
}

// Merge combines a price row and a fundamentals row for the same instrument
// into a single merged record.
func Merge(p PriceRow, f FundamentalsRow) SecurityRecord {
	return SecurityRecord{
		InstrumentID:      p.InstrumentID,
		Name:              p.Name,
		LongName:          p.LongName,
		Symbol:            p.Symbol,
		ExchangeCountry:   p.ExchangeCountry,
		Currency:          p.Currency,
		Price:             p.Price,
		PE:                p.PE,
		PS:                p.PS,
		PB:                p.PB,
		EPS:               p.EPS,
		DividendYield:     p.DividendYield,
		DividendPerShare:  p.DividendPerShare,
		URL:               p.URL,
		Year:              f.Year,
		Sector:            f.Sector,
		TotalRevenue:      f.TotalRevenue,
		NetIncome:         f.NetIncome,
		DebtToEquityRatio: f.DebtToEquityRatio,
		OperatingIncome:   f.OperatingIncome,
		CashFlowOperating: f.CashFlowOperating,
		Description:       f.Description,
	}
}

// AnnualPoint is one point of a per-year trend series in the insights view.
type AnnualPoint struct {
	Year              int     `json:"year"`
	TotalRevenue      float64 `json:"total_revenue"`
	NetIncome         float64 `json:"net_income"`
	DebtToEquityRatio float64 `json:"debt_to_equity_ratio"`
	CashFlowOperating float64 `json:"cash_flow_operating"`
}
