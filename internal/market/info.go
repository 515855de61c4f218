package market

import (
	"github.com/piquette/finance-go/equity"
)

// StockInfo is the static quote record attached to summaries and chart
// titles. Zero values mean the provider did not report the field.
type StockInfo struct {
	Ticker        string
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
	Volume        int64
	MarketCap     int64
	High52w       float64
	Low52w        float64
	DividendYield float64
	PERatio       float64
}

// Info fetches the current quote details for a ticker. Failures here are
// not fatal to a chart request; callers render without the info block.
func (p *Provider) Info(ticker string) (*StockInfo, error) {
	q, err := equity.Get(ticker)
	if err != nil {
		return nil, &ProviderError{Ticker: ticker, Err: err}
	}
	return &StockInfo{
		Ticker:        ticker,
		Name:          q.ShortName,
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		Volume:        int64(q.RegularMarketVolume),
		MarketCap:     q.MarketCap,
		High52w:       q.FiftyTwoWeekHigh,
		Low52w:        q.FiftyTwoWeekLow,
		DividendYield: q.TrailingAnnualDividendYield,
		PERatio:       q.TrailingPE,
	}, nil
}
