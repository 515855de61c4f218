package market

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Dividend is one cash distribution. Amounts are decimals so display
// totals add up exactly.
type Dividend struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Dividends returns the dividend payments inside the given period, oldest
// first. An empty slice means the fund paid nothing in the window.
func (p *Provider) Dividends(ctx context.Context, ticker, period string) ([]Dividend, error) {
	body, err := p.fetchChart(ctx, ticker, period, "1d")
	if err != nil {
		return nil, err
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}
	events := body.Chart.Result[0].Events.Dividends
	out := make([]Dividend, 0, len(events))
	for _, d := range events {
		out = append(out, Dividend{
			Date:   time.Unix(d.Date, 0).UTC(),
			Amount: decimal.NewFromFloat(d.Amount),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// DividendTotal sums a payment list exactly.
func DividendTotal(divs []Dividend) decimal.Decimal {
	total := decimal.Zero
	for _, d := range divs {
		total = total.Add(d.Amount)
	}
	return total
}
