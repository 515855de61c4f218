// Package indicator derives technical indicator series from a normalized
// OHLCV series. Every result is aligned to the source timestamp axis;
// points without enough trailing history are NaN and callers treat any
// non-finite value as "no signal".
package indicator

import (
	"math"

	"stockChartPro/internal/series"
)

// Line is one indicator series aligned to its source OHLCV axis.
type Line struct {
	Values []float64
}

// Defined reports whether the point at i carries a value.
func (l Line) Defined(i int) bool {
	return i >= 0 && i < len(l.Values) && !math.IsNaN(l.Values[i])
}

// DefinedCount returns the number of non-NaN points.
func (l Line) DefinedCount() int {
	n := 0
	for _, v := range l.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// FirstDefined returns the index of the first non-NaN point, or -1.
func (l Line) FirstDefined() int {
	for i, v := range l.Values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

func allNaN(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA computes the simple moving average of close over a trailing window.
// The first window-1 points are NaN; a window longer than the series
// yields an all-NaN line rather than an error. A window containing an
// undefined close is undefined, and the average becomes defined again as
// soon as every close in the trailing window is defined.
func SMA(s *series.Series, window int) Line {
	n := s.Len()
	out := allNaN(n)
	if window <= 0 || n < window {
		return Line{Values: out}
	}
	sum := 0.0
	undefined := 0
	for i := 0; i < n; i++ {
		if v := s.Close[i]; math.IsNaN(v) {
			undefined++
		} else {
			sum += v
		}
		if i >= window {
			if v := s.Close[i-window]; math.IsNaN(v) {
				undefined--
			} else {
				sum -= v
			}
		}
		if i >= window-1 && undefined == 0 {
			out[i] = sum / float64(window)
		}
	}
	return Line{Values: out}
}

// EMA computes the exponential moving average of close with smoothing
// factor 2/(window+1), seeded by the first defined close. The recurrence
// is causal: each output depends only on past and current closes.
func EMA(s *series.Series, window int) Line {
	return Line{Values: emaOf(s.Close, window)}
}

func emaOf(values []float64, window int) []float64 {
	n := len(values)
	out := allNaN(n)
	if window <= 0 || n == 0 {
		return out
	}
	alpha := 2.0 / (float64(window) + 1.0)
	// Undefined inputs stay undefined in the output; the recurrence
	// carries its state across them so the next defined value continues
	// from the last defined average.
	ema := math.NaN()
	for i := 0; i < n; i++ {
		v := values[i]
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(ema) {
			ema = v
		} else {
			ema = alpha*v + (1.0-alpha)*ema
		}
		out[i] = ema
	}
	return out
}

// Bollinger returns the upper, middle and lower volatility bands. The
// middle band is SMA(window); the outer bands sit k trailing sample
// standard deviations away, so upper-middle always equals middle-lower.
func Bollinger(s *series.Series, window int, k float64) (upper, middle, lower Line) {
	n := s.Len()
	middle = SMA(s, window)
	up := allNaN(n)
	lo := allNaN(n)
	if window < 2 || n < window {
		return Line{Values: up}, middle, Line{Values: lo}
	}
	for i := window - 1; i < n; i++ {
		m := middle.Values[i]
		if math.IsNaN(m) {
			continue
		}
		var ss float64
		for j := i - window + 1; j <= i; j++ {
			d := s.Close[j] - m
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(window-1))
		up[i] = m + k*sd
		lo[i] = m - k*sd
	}
	return Line{Values: up}, middle, Line{Values: lo}
}

// RSI computes the Relative Strength Index over a trailing window: the
// rolling mean of gains divided by the rolling mean of losses, mapped to
// 100-100/(1+RS). A window with zero average loss produces NaN instead of
// pinning the value, so callers skip the point.
func RSI(s *series.Series, window int) Line {
	n := s.Len()
	out := allNaN(n)
	if window <= 0 || n < window+1 {
		return Line{Values: out}
	}
	gains := make([]float64, n)
	losses := make([]float64, n)
	defined := make([]bool, n)
	for i := 1; i < n; i++ {
		if math.IsNaN(s.Close[i]) || math.IsNaN(s.Close[i-1]) {
			continue
		}
		defined[i] = true
		delta := s.Close[i] - s.Close[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}
	var gainSum, lossSum float64
	undefined := 0
	for i := 1; i < n; i++ {
		if defined[i] {
			gainSum += gains[i]
			lossSum += losses[i]
		} else {
			undefined++
		}
		if i > window {
			if defined[i-window] {
				gainSum -= gains[i-window]
				lossSum -= losses[i-window]
			} else {
				undefined--
			}
		}
		// A window touching an undefined delta carries no signal; the
		// index resumes once that delta leaves the window.
		if i < window || undefined > 0 {
			continue
		}
		avgGain := gainSum / float64(window)
		avgLoss := lossSum / float64(window)
		if avgLoss == 0 {
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return Line{Values: out}
}

// MACD returns the MACD line (EMA(fast)-EMA(slow)), its signal line
// (EMA(signal) of the MACD line) and the histogram between the two. All
// three share the causal EMA recurrence.
func MACD(s *series.Series, fast, slow, signal int) (macd, signalLine, histogram Line) {
	n := s.Len()
	fastEMA := emaOf(s.Close, fast)
	slowEMA := emaOf(s.Close, slow)
	macdVals := make([]float64, n)
	for i := 0; i < n; i++ {
		macdVals[i] = fastEMA[i] - slowEMA[i]
	}
	sigVals := emaOf(macdVals, signal)
	histVals := make([]float64, n)
	for i := 0; i < n; i++ {
		histVals[i] = macdVals[i] - sigVals[i]
	}
	return Line{Values: macdVals}, Line{Values: sigVals}, Line{Values: histVals}
}
