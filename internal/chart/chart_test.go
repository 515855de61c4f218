package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockChartPro/internal/series"
)

func syntheticSeries(t *testing.T, n int, withVolume bool) *series.Series {
	t.Helper()
	raw := series.RawTable{
		Index: make([]time.Time, n),
	}
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closeVals := make([]float64, n)
	vol := make([]float64, n)
	base := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		raw.Index[i] = base.AddDate(0, 0, i)
		price := 100 + 10*math.Sin(float64(i)/4)
		open[i] = price - 0.5
		high[i] = price + 1
		low[i] = price - 1
		closeVals[i] = price
		vol[i] = float64(1000 + 100*i)
	}
	raw.Columns = []series.RawColumn{
		{Name: "open", Values: open},
		{Name: "high", Values: high},
		{Name: "low", Values: low},
		{Name: "close", Values: closeVals},
	}
	if withVolume {
		raw.Columns = append(raw.Columns, series.RawColumn{Name: "volume", Values: vol})
	}
	s, err := series.Normalize(raw)
	require.NoError(t, err)
	return s
}

func requirePNG(t *testing.T, img []byte) {
	t.Helper()
	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err, "render output must be a decodable PNG")
	require.Greater(t, decoded.Bounds().Dx(), 0)
	require.Greater(t, decoded.Bounds().Dy(), 0)
}

func TestRenderStyles(t *testing.T) {
	s := syntheticSeries(t, 60, false)
	for _, style := range []Style{StyleLine, StyleArea, StyleBar, StyleCandlestick} {
		req := Request{
			Tickers:  []string{"VOO"},
			Period:   "3mo",
			Interval: "1d",
			Style:    style,
			Theme:    Dark,
			Width:    600,
			Height:   400,
		}
		img, err := Render(req, s)
		require.NoError(t, err, "style %s", style)
		requirePNG(t, img)
	}
}

func TestRenderWithVolumeAndIndicators(t *testing.T) {
	s := syntheticSeries(t, 60, true)
	req := Request{
		Tickers:    []string{"VOO"},
		Period:     "3mo",
		Interval:   "1d",
		Style:      StyleLine,
		Indicators: AllIndicators,
		Theme:      Light,
		Width:      600,
		Height:     400,
	}
	img, err := Render(req, s)
	require.NoError(t, err)
	requirePNG(t, img)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	require.Equal(t, 600, decoded.Bounds().Dx())
	require.Equal(t, 400, decoded.Bounds().Dy())
}

func TestRenderShortSeriesWithOversizedIndicators(t *testing.T) {
	// Overlays with more warm-up than data degrade to nothing, the
	// render itself must still succeed.
	s := syntheticSeries(t, 5, false)
	req := Request{
		Tickers:    []string{"JEPI"},
		Period:     "5d",
		Interval:   "1d",
		Style:      StyleLine,
		Indicators: []Indicator{IndicatorSMA50, IndicatorBollinger},
		Theme:      Dark,
		Width:      400,
		Height:     300,
	}
	img, err := Render(req, s)
	require.NoError(t, err)
	requirePNG(t, img)
}

func TestRenderWithInteriorUndefinedClose(t *testing.T) {
	s := syntheticSeries(t, 40, true)
	s.Close[17] = math.NaN()
	req := Request{
		Tickers:    []string{"VOO"},
		Period:     "3mo",
		Interval:   "1d",
		Style:      StyleLine,
		Indicators: []Indicator{IndicatorSMA20, IndicatorBollinger},
		Theme:      Dark,
		Width:      600,
		Height:     400,
	}
	img, err := Render(req, s)
	require.NoError(t, err, "undefined points are skipped, not drawn")
	requirePNG(t, img)
}

func TestRenderComparison(t *testing.T) {
	a := syntheticSeries(t, 40, true)
	b := syntheticSeries(t, 40, true)
	req := Request{
		Tickers:  []string{"VOO", "JEPI"},
		Period:   "3mo",
		Interval: "1d",
		Style:    StyleLine,
		Theme:    Dark,
		Width:    800,
		Height:   600,
	}
	img, err := RenderComparison(req, a, b)
	require.NoError(t, err)
	requirePNG(t, img)
}

func TestRenderComparisonNeedsTwoTickers(t *testing.T) {
	a := syntheticSeries(t, 10, false)
	req := Request{Tickers: []string{"VOO"}, Theme: Dark}
	_, err := RenderComparison(req, a, a)
	require.Error(t, err)
}

func TestBodyWidthThresholds(t *testing.T) {
	require.Equal(t, time.Minute, bodyWidthFor(5*time.Minute))
	require.Equal(t, 30*time.Minute, bodyWidthFor(time.Hour))
	require.Equal(t, time.Duration(0.6*24*float64(time.Hour)), bodyWidthFor(24*time.Hour))
	require.Equal(t, 4*24*time.Hour, bodyWidthFor(7*24*time.Hour))
	require.Equal(t, 4*24*time.Hour, bodyWidthFor(30*24*time.Hour))
}

func TestTimeTicks(t *testing.T) {
	s := syntheticSeries(t, 30, false)
	ticks := timeTicks(s, "1d", 7)
	require.Len(t, ticks, 7)
	require.Equal(t, ticks[0].Label, easternTime(s.Timestamps[0]).Format("2006-01-02"))
	for i := 1; i < len(ticks); i++ {
		require.Greater(t, ticks[i].Value, ticks[i-1].Value, "ticks must be increasing")
	}

	intraday := timeTicks(s, "5m", 4)
	require.Contains(t, intraday[0].Label, ":", "minute intervals carry a clock label")
}

func TestPadRange(t *testing.T) {
	lo, hi := padRange(100, 200)
	require.InDelta(t, 95.0, lo, 1e-9)
	require.InDelta(t, 205.0, hi, 1e-9)

	lo, hi = padRange(100, 100)
	require.Less(t, lo, 100.0, "flat ranges still get padding")
	require.Greater(t, hi, 100.0)
}

func TestCacheTTL(t *testing.T) {
	cache := NewCache(50 * time.Millisecond)
	cache.Set("k", []byte{1, 2, 3})

	img, ok := cache.Get("k")
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, img)

	img[0] = 9
	again, _ := cache.Get("k")
	require.Equal(t, byte(1), again[0], "cached bytes must not alias the returned slice")

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.Get("k")
	require.False(t, ok, "entries expire after the TTL")
}

func TestCacheKeyDistinguishesRequests(t *testing.T) {
	base := Request{Tickers: []string{"VOO"}, Period: "1y", Interval: "1d", Style: StyleLine, Theme: Dark}
	other := base
	other.Indicators = []Indicator{IndicatorSMA20}
	require.NotEqual(t, base.CacheKey(), other.CacheKey())

	themed := base
	themed.Theme = Light
	require.NotEqual(t, base.CacheKey(), themed.CacheKey())
}

func TestDefaultSaveName(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 5, 0, time.UTC)
	require.Equal(t, "chart_20240315_093005.png", DefaultSaveName(now))
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveFile(dir, "mychart", []byte{0x89, 0x50})
	require.NoError(t, err)
	require.Contains(t, path, "mychart.png", "extension appended when missing")
}

func TestThemeByName(t *testing.T) {
	require.Equal(t, Light, ThemeByName("LIGHT"))
	require.Equal(t, Dark, ThemeByName("dark"))
	require.Equal(t, Dark, ThemeByName("unknown"))
}
