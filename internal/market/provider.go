// Package market is the boundary to the remote price-data provider. It
// returns raw tabular results; normalization happens in package series.
package market

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"stockChartPro/internal/series"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Periods lists the recognized period tokens. Free-form strings such as
// "100d" are passed through to the provider verbatim.
var Periods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "max"}

// Intervals lists the recognized interval tokens, also pass-through for
// anything else. Minute intervals only work with short periods; the
// provider rejects the rest and the error is surfaced as-is.
var Intervals = []string{"1m", "5m", "15m", "30m", "1h", "1d", "1wk", "1mo"}

// ProviderError wraps a transport or provider failure for one request.
// There are no retries: the first failure is terminal for the request.
type ProviderError struct {
	Ticker string
	Err    error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("provider: %s: %v", e.Ticker, e.Err) }
func (e *ProviderError) Unwrap() error { return e.Err }

// Provider fetches price history over the chart API.
type Provider struct {
	client *resty.Client
}

func NewProvider(timeout time.Duration) *Provider {
	return newProvider(defaultBaseURL, timeout)
}

// NewProviderWithBaseURL points the provider at an alternate host, used by
// tests to serve canned responses.
func NewProviderWithBaseURL(baseURL string, timeout time.Duration) *Provider {
	return newProvider(baseURL, timeout)
}

func newProvider(baseURL string, timeout time.Duration) *Provider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15").
		SetHeader("Accept", "application/json, text/javascript, */*; q=0.01")
	return &Provider{client: client}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Timezone string `json:"timezone"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

func (p *Provider) fetchChart(ctx context.Context, ticker, period, interval string) (*chartResponse, error) {
	var body chartResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":          period,
			"interval":       interval,
			"includePrePost": "true",
			"events":         "div,splits",
		}).
		SetResult(&body).
		Get("/v8/finance/chart/" + url.PathEscape(ticker))
	if err != nil {
		return nil, &ProviderError{Ticker: ticker, Err: err}
	}
	if resp.IsError() {
		return nil, &ProviderError{Ticker: ticker, Err: fmt.Errorf("status %d: %s", resp.StatusCode(), preview(resp.String()))}
	}
	return &body, nil
}

// History fetches the raw price table for one symbol. The result keeps the
// provider's column shape (lowercase field names, per-symbol level);
// callers run it through series.Normalize before use.
func (p *Provider) History(ctx context.Context, ticker, period, interval string) (series.RawTable, error) {
	body, err := p.fetchChart(ctx, ticker, period, interval)
	if err != nil {
		return series.RawTable{}, err
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return series.RawTable{}, fmt.Errorf("%s: %w", ticker, series.ErrNoData)
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	index := make([]time.Time, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		index[i] = time.Unix(ts, 0).UTC()
	}
	symbol := result.Meta.Symbol
	table := series.RawTable{
		Index: index,
		Columns: []series.RawColumn{
			{Name: "open", Symbol: symbol, Values: deref(quote.Open, len(index))},
			{Name: "high", Symbol: symbol, Values: deref(quote.High, len(index))},
			{Name: "low", Symbol: symbol, Values: deref(quote.Low, len(index))},
			{Name: "close", Symbol: symbol, Values: deref(quote.Close, len(index))},
			{Name: "volume", Symbol: symbol, Values: deref(quote.Volume, len(index))},
		},
	}
	return table, nil
}

// deref pads or truncates a nullable column to n values, mapping provider
// nulls to NaN.
func deref(vals []*float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(vals) && vals[i] != nil {
			out[i] = *vals[i]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func preview(s string) string {
	if len(s) > 120 {
		return s[:120]
	}
	return s
}
