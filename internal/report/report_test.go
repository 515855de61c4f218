package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockChartPro/internal/market"
	"stockChartPro/internal/series"
)

func seriesFrom(closes []float64) *series.Series {
	n := len(closes)
	s := &series.Series{
		Timestamps: make([]time.Time, n),
		High:       make([]float64, n),
		Low:        make([]float64, n),
		Close:      closes,
	}
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		s.Timestamps[i] = base.AddDate(0, 0, i)
		s.High[i] = closes[i]
		s.Low[i] = closes[i]
	}
	return s
}

func TestSummarize(t *testing.T) {
	s := seriesFrom([]float64{10, 20, 15, 25, 20, 30, 25, 35, 30, 40})
	sum := Summarize("VOO", s, nil)

	require.Equal(t, "VOO", sum.Ticker)
	require.Equal(t, 10, sum.Points)
	require.Equal(t, 40.0, sum.LatestClose)
	require.Equal(t, 40.0, sum.PeriodHigh)
	require.Equal(t, 10.0, sum.PeriodLow)
	require.InDelta(t, 300.0, sum.Return, 1e-9, "return is (40-10)/10*100")
}

func TestSummarizeSkipsUndefined(t *testing.T) {
	s := seriesFrom([]float64{10, 20})
	s.High[0] = math.NaN()
	s.Low[1] = math.NaN()
	sum := Summarize("JEPI", s, nil)

	require.Equal(t, 20.0, sum.PeriodHigh)
	require.Equal(t, 10.0, sum.PeriodLow)
}

func TestCompareOutperformer(t *testing.T) {
	a := Summary{Ticker: "VOO", Return: 5.0}
	b := Summary{Ticker: "JEPI", Return: 3.0}
	c := Compare(a, b)

	require.Equal(t, "VOO", c.Outperformer)
	require.InDelta(t, 2.0, c.Differential, 1e-12)

	c = Compare(b, a)
	require.Equal(t, "VOO", c.Outperformer, "order of arguments must not matter")
	require.InDelta(t, 2.0, c.Differential, 1e-12)
}

func TestCompareTie(t *testing.T) {
	a := Summary{Ticker: "VOO", Return: 4.0}
	b := Summary{Ticker: "JEPI", Return: 4.0}
	c := Compare(a, b)

	require.Empty(t, c.Outperformer, "exact ties report no outperformer")
	require.Equal(t, 0.0, c.Differential)
}

func TestFormatSummaryIncludesInfo(t *testing.T) {
	s := seriesFrom([]float64{10, 20})
	info := &market.StockInfo{
		Name:          "Vanguard S&P 500 ETF",
		DividendYield: 0.0132,
		PERatio:       26.4,
	}
	out := FormatSummary(Summarize("VOO", s, info))

	require.Contains(t, out, "VOO")
	require.Contains(t, out, "Vanguard S&P 500 ETF")
	require.Contains(t, out, "1.32%")
	require.Contains(t, out, "26.40")
}

func TestFormatPortfolio(t *testing.T) {
	infos := []*market.StockInfo{
		{Ticker: "VOO", Price: 512.34, Change: 2.1, ChangePercent: 0.41, DividendYield: 0.0132},
		{Ticker: "JEPI", Price: 56.78, Change: -0.3, ChangePercent: -0.52},
	}
	out := FormatPortfolio(infos)

	require.Contains(t, out, "VOO")
	require.Contains(t, out, "JEPI")
	require.Contains(t, out, "$512.34")
	require.Contains(t, out, "+2.10")
	require.Contains(t, out, "1.32%")
	require.Contains(t, out, "N/A", "missing dividend yield shows N/A")
}

func TestFormatPortfolioAllLookupsFailed(t *testing.T) {
	out := FormatPortfolio([]*market.StockInfo{nil, nil})
	require.Contains(t, out, "Could not fetch stock information")
}

func TestFormatComparisonTie(t *testing.T) {
	c := Compare(Summary{Ticker: "VOO", Return: 4}, Summary{Ticker: "JEPI", Return: 4})
	out := FormatComparison(c)
	require.Contains(t, out, "tie")
	require.False(t, strings.Contains(out, "🏆"), "no trophy on a tie")
}
