package market

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockChartPro/internal/series"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "VOO", "timezone": "EST"},
      "timestamp": [1704207600, 1704294000, 1704380400],
      "indicators": {
        "quote": [{
          "open":   [400.0, 402.0, null],
          "high":   [405.0, 406.0, 407.0],
          "low":    [399.0, 400.0, 401.0],
          "close":  [402.0, 404.0, 406.0],
          "volume": [1000, 2000, 3000]
        }]
      },
      "events": {
        "dividends": {
          "1704207600": {"amount": 1.5, "date": 1704207600},
          "1704380400": {"amount": 1.6, "date": 1704380400}
        }
      }
    }],
    "error": null
  }
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProviderWithBaseURL(srv.URL, 5*time.Second)
}

func TestHistory(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v8/finance/chart/VOO", r.URL.Path)
		require.Equal(t, "1mo", r.URL.Query().Get("range"))
		require.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartFixture))
	})

	raw, err := p.History(context.Background(), "VOO", "1mo", "1d")
	require.NoError(t, err)
	require.Equal(t, 3, raw.Rows())
	require.Len(t, raw.Columns, 5)
	require.Equal(t, "VOO", raw.Columns[0].Symbol)

	s, err := series.Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	require.True(t, s.HasVolume())
	require.Equal(t, []float64{402, 404, 406}, s.Close)
	require.True(t, math.IsNaN(s.Open[2]), "provider null must map to NaN")
}

func TestHistoryEmptyResult(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	})

	_, err := p.History(context.Background(), "VOO", "1y", "1d")
	require.ErrorIs(t, err, series.ErrNoData)
}

func TestHistoryProviderError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := p.History(context.Background(), "BOGUS", "1y", "1d")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	require.Equal(t, "BOGUS", provErr.Ticker)
	require.Contains(t, provErr.Error(), "404")
}

func TestHistoryNoRetry(t *testing.T) {
	calls := 0
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream busy", http.StatusServiceUnavailable)
	})

	_, err := p.History(context.Background(), "VOO", "1y", "1d")
	require.Error(t, err)
	require.Equal(t, 1, calls, "a failed fetch is terminal, never retried")
}

func TestDividends(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartFixture))
	})

	divs, err := p.Dividends(context.Background(), "VOO", "1y")
	require.NoError(t, err)
	require.Len(t, divs, 2)
	require.True(t, divs[0].Date.Before(divs[1].Date), "payments sorted oldest first")
	require.Equal(t, "3.1", DividendTotal(divs).String())
}
