package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockChartPro/internal/series"
)

func closeSeries(closes ...float64) *series.Series {
	n := len(closes)
	s := &series.Series{
		Timestamps: make([]time.Time, n),
		Close:      closes,
	}
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range s.Timestamps {
		s.Timestamps[i] = base.AddDate(0, 0, i)
	}
	return s
}

func TestSMAKnownValues(t *testing.T) {
	s := closeSeries(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	line := SMA(s, 3)

	require.Len(t, line.Values, 10)
	require.False(t, line.Defined(0), "warm-up points must be undefined")
	require.False(t, line.Defined(1))
	for i := 2; i < 10; i++ {
		require.InDelta(t, float64(i), line.Values[i], 1e-12, "SMA(3) at index %d", i)
	}
	require.Equal(t, 8, line.DefinedCount())
}

func TestSMAWindowLongerThanSeries(t *testing.T) {
	s := closeSeries(1, 2, 3)
	line := SMA(s, 10)
	require.Equal(t, -1, line.FirstDefined(), "oversized window degrades to all undefined")
	require.Equal(t, 0, line.DefinedCount())
}

func TestSMARecoversAfterUndefinedClose(t *testing.T) {
	s := closeSeries(1, 2, math.NaN(), 4, 5, 6, 7)
	line := SMA(s, 3)

	require.False(t, line.Defined(2), "window containing the undefined close has no value")
	require.False(t, line.Defined(3))
	require.False(t, line.Defined(4))
	require.True(t, line.Defined(5), "SMA must be defined once the undefined close left the window")
	require.InDelta(t, 5.0, line.Values[5], 1e-12, "mean of [4,5,6]")
	require.InDelta(t, 6.0, line.Values[6], 1e-12, "mean of [5,6,7]")
}

func TestEMASkipsUndefinedClose(t *testing.T) {
	s := closeSeries(10, math.NaN(), 20)
	line := EMA(s, 9)
	alpha := 2.0 / 10.0

	require.Equal(t, 10.0, line.Values[0])
	require.False(t, line.Defined(1), "undefined close stays undefined in the output")
	require.InDelta(t, alpha*20+(1-alpha)*10, line.Values[2], 1e-12,
		"recurrence continues from the last defined average")
}

func TestBollingerRecoversAfterUndefinedClose(t *testing.T) {
	s := closeSeries(1, 2, math.NaN(), 4, 5, 6, 7)
	upper, middle, lower := Bollinger(s, 3, 2)

	require.False(t, middle.Defined(4))
	require.True(t, middle.Defined(5))
	require.True(t, upper.Defined(5))
	require.True(t, lower.Defined(5))
	require.InDelta(t, 5.0, middle.Values[5], 1e-12)
}

func TestEMASeededByFirstClose(t *testing.T) {
	s := closeSeries(10, 20, 30)
	line := EMA(s, 9)
	alpha := 2.0 / 10.0

	require.Equal(t, 10.0, line.Values[0], "EMA must seed from the first close")
	want := alpha*20 + (1-alpha)*10
	require.InDelta(t, want, line.Values[1], 1e-12)
	want = alpha*30 + (1-alpha)*want
	require.InDelta(t, want, line.Values[2], 1e-12)
}

func TestEMAMatchesSMAOnConstantSeries(t *testing.T) {
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = 42.5
	}
	s := closeSeries(vals...)
	ema := EMA(s, 30)
	sma := SMA(s, 30)

	require.InDelta(t, sma.Values[29], ema.Values[29], 1e-12, "EMA and SMA agree on a constant series")
	require.InDelta(t, 42.5, ema.Values[29], 1e-12)
}

func TestBollingerMiddleEqualsSMA(t *testing.T) {
	s := closeSeries(10, 12, 11, 13, 15, 14, 16, 18, 17, 19)
	upper, middle, lower := Bollinger(s, 5, 2)
	sma := SMA(s, 5)

	for i := range middle.Values {
		if !sma.Defined(i) {
			require.False(t, middle.Defined(i))
			require.False(t, upper.Defined(i))
			require.False(t, lower.Defined(i))
			continue
		}
		require.Equal(t, sma.Values[i], middle.Values[i], "middle band is exactly SMA at %d", i)
	}
}

func TestBollingerSymmetry(t *testing.T) {
	s := closeSeries(10, 12, 11, 13, 15, 14, 16, 18, 17, 19)
	upper, middle, lower := Bollinger(s, 5, 2)

	for i := range middle.Values {
		if !middle.Defined(i) {
			continue
		}
		above := upper.Values[i] - middle.Values[i]
		below := middle.Values[i] - lower.Values[i]
		require.InDelta(t, above, below, 1e-9, "band must be symmetric at %d", i)
		require.GreaterOrEqual(t, above, 0.0)
	}
}

func TestBollingerSampleStdDev(t *testing.T) {
	s := closeSeries(1, 2, 3, 4)
	upper, middle, lower := Bollinger(s, 3, 2)

	// stddev([1,2,3]) with the n-1 divisor is exactly 1.
	require.InDelta(t, 2.0, middle.Values[2], 1e-12)
	require.InDelta(t, 4.0, upper.Values[2], 1e-12)
	require.InDelta(t, 0.0, lower.Values[2], 1e-12)
}

func TestRSIBounds(t *testing.T) {
	s := closeSeries(10, 12, 9, 14, 11, 16, 13, 18, 15, 20, 17, 22, 19, 24, 21, 26)
	line := RSI(s, 14)

	require.GreaterOrEqual(t, line.DefinedCount(), 1)
	for i, v := range line.Values {
		if math.IsNaN(v) {
			continue
		}
		require.GreaterOrEqual(t, v, 0.0, "RSI below 0 at %d", i)
		require.LessOrEqual(t, v, 100.0, "RSI above 100 at %d", i)
	}
}

func TestRSIZeroLossWindow(t *testing.T) {
	s := closeSeries(1, 2, 3, 4, 5, 6)
	line := RSI(s, 4)
	require.Equal(t, 0, line.DefinedCount(), "monotonic gains have no average loss, so no signal")
}

func TestRSIRecoversAfterUndefinedClose(t *testing.T) {
	s := closeSeries(10, 12, 9, 14, math.NaN(), 16, 13, 18, 15, 20, 17)
	line := RSI(s, 3)

	require.True(t, line.Defined(3), "fully defined delta window before the gap")
	for i := 4; i <= 7; i++ {
		require.False(t, line.Defined(i), "windows touching the undefined delta carry no signal, index %d", i)
	}
	require.True(t, line.Defined(8), "RSI must recover once the undefined delta left the window")
	require.GreaterOrEqual(t, line.Values[8], 0.0)
	require.LessOrEqual(t, line.Values[8], 100.0)
}

func TestRSIWindowLongerThanSeries(t *testing.T) {
	s := closeSeries(10, 9, 11)
	line := RSI(s, 14)
	require.Equal(t, 0, line.DefinedCount())
}

func TestMACDHistogramRelationship(t *testing.T) {
	s := closeSeries(10, 12, 9, 14, 11, 16, 13, 18, 15, 20, 17, 22, 19, 24, 21, 26, 23, 28, 25, 30)
	macd, signal, hist := MACD(s, 12, 26, 9)

	require.Len(t, macd.Values, s.Len())
	for i := range hist.Values {
		require.InDelta(t, macd.Values[i]-signal.Values[i], hist.Values[i], 1e-12, "histogram at %d", i)
	}
}

func TestMACDIsEMASpread(t *testing.T) {
	s := closeSeries(10, 12, 9, 14, 11, 16, 13, 18)
	macd, _, _ := MACD(s, 3, 5, 2)
	fast := EMA(s, 3)
	slow := EMA(s, 5)

	for i := range macd.Values {
		require.InDelta(t, fast.Values[i]-slow.Values[i], macd.Values[i], 1e-12)
	}
}
