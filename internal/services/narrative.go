package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"stockfinder/internal/models"
)

// Narrative renders the fixed multi-paragraph investment narrative for one
// screener result. It is a pure function of the record: fixed template text
// with field substitution and no branching on values, so identical records
// always produce identical text.
func Narrative(r models.SecurityRecord) string {
	introduction := fmt.Sprintf("Let's dive into %s (%s), a standout in the %s sector. "+
		"With its base in %s, %s has been making waves with its innovative approaches. "+
		"Currently priced at %s (%s), it reflects the market's valuation at this snapshot in time. "+
		"Learn more about this company at %s.",
		r.LongName, r.Symbol, r.Sector,
		r.ExchangeCountry, r.LongName,
		money(r.Price), r.Currency,
		r.URL)

	financialPerformance := fmt.Sprintf("As of the latest reporting period ending in %d, "+
		"%s reported a total revenue of %s, with a net income of %s. "+
		"The operating income stood at %s, highlighting its operational efficiency.",
		r.Year,
		r.LongName, money(r.TotalRevenue), money(r.NetIncome),
		money(r.OperatingIncome))

	valuation := fmt.Sprintf("The market has currently valued %s with a P/E ratio of %s, "+
		"and a P/B ratio of %s. The earnings per share (EPS) is noted at %s, "+
		"indicating its market perception.",
		r.LongName, ratioPtr(r.PE),
		ratioPtr(r.PB), ratioPtr(r.EPS))

	investmentConsiderations := fmt.Sprintf("For dividend-seeking investors, %s's dividend yield is at %s%% "+
		"with a dividend per share of %s. The debt-to-equity ratio stands at %s, "+
		"which explains the company's financial leverage.",
		r.LongName, ratioPtr(r.DividendYield),
		ratioPtr(r.DividendPerShare), ratio(r.DebtToEquityRatio))

	finalThoughts := fmt.Sprintf("Considering the growth in its key metrics, %s might be a good addition "+
		"to your portfolio, particularly if you're looking at the %s sector with a risk "+
		"tolerance perspective.",
		r.LongName, r.Sector)

	about := fmt.Sprintf("About %s: at the heart of its success is its core business philosophy "+
		"and strategic initiatives. %s",
		r.LongName, r.Description)

	return strings.Join([]string{
		introduction,
		financialPerformance,
		valuation,
		investmentConsiderations,
		finalThoughts,
		about,
	}, "\n\n")
}

// money formats a monetary amount with two fixed decimal places.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// ratio formats a unitless ratio with two fixed decimal places.
func ratio(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// ratioPtr formats a nullable ratio; unreported fields render as "n/a".
func ratioPtr(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return ratio(*p)
}
