package report

import (
	"fmt"
	"math"

	"stockChartPro/internal/market"
	"stockChartPro/internal/series"
)

// Summary holds the scalar statistics computed over one normalized
// series, plus optional quote metadata when a live lookup succeeded.
type Summary struct {
	Ticker      string
	Points      int
	LatestClose float64
	PeriodHigh  float64
	PeriodLow   float64
	Return      float64
	Info        *market.StockInfo
}

// Summarize reduces a series to its display statistics. Undefined values
// are skipped, not propagated, so partially missing columns still yield
// a usable report.
func Summarize(ticker string, s *series.Series, info *market.StockInfo) Summary {
	sum := Summary{
		Ticker:      ticker,
		Points:      s.Len(),
		LatestClose: s.LastClose(),
		PeriodHigh:  maxDefined(s.High),
		PeriodLow:   minDefined(s.Low),
		Return:      periodReturn(s),
		Info:        info,
	}
	return sum
}

// Comparison reports the relative performance of two assets over the
// same window. Outperformer is empty on an exact tie.
type Comparison struct {
	A, B         Summary
	Differential float64
	Outperformer string
}

func Compare(a, b Summary) Comparison {
	c := Comparison{A: a, B: b, Differential: math.Abs(a.Return - b.Return)}
	switch {
	case a.Return > b.Return:
		c.Outperformer = a.Ticker
	case b.Return > a.Return:
		c.Outperformer = b.Ticker
	}
	return c
}

func periodReturn(s *series.Series) float64 {
	first := s.FirstClose()
	last := s.LastClose()
	if math.IsNaN(first) || math.IsNaN(last) || first == 0 {
		return math.NaN()
	}
	return (last - first) / first * 100
}

func maxDefined(vals []float64) float64 {
	out := math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v > out {
			out = v
		}
	}
	return out
}

func minDefined(vals []float64) float64 {
	out := math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v < out {
			out = v
		}
	}
	return out
}

func formatPct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", v)
}

func formatPrice(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", v)
}
