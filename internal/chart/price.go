package chart

import (
	"bytes"
	"errors"
	"math"
	"time"

	chartdraw "github.com/wcharczuk/go-chart/v2"

	"stockChartPro/internal/indicator"
	"stockChartPro/internal/series"
)

// renderPricePanel draws the main panel for one asset: the styled price
// series plus any requested indicator overlays, themed and sized for the
// figure it will be composited into.
func renderPricePanel(req Request, s *series.Series, width, height int) ([]byte, error) {
	if s.Len() < 2 {
		return nil, errors.New("not enough data points")
	}
	theme := req.Theme

	var seriesList []chartdraw.Series
	overlays, overlayMin, overlayMax := buildOverlays(req, s)

	switch req.Style {
	case StyleBar, StyleCandlestick:
		seriesList = append(seriesList, &ohlcSeries{
			name:   req.Ticker(),
			data:   s,
			up:     theme.up(),
			down:   theme.down(),
			candle: req.Style == StyleCandlestick,
		})
	case StyleArea:
		ts, vals := definedClose(s)
		seriesList = append(seriesList, chartdraw.TimeSeries{
			Name:    req.Ticker(),
			XValues: ts,
			YValues: vals,
			Style: chartdraw.Style{
				StrokeColor: theme.line(),
				StrokeWidth: 2.0,
				FillColor:   theme.area().WithAlpha(70),
			},
		})
	default:
		ts, vals := definedClose(s)
		seriesList = append(seriesList, chartdraw.TimeSeries{
			Name:    req.Ticker(),
			XValues: ts,
			YValues: vals,
			Style: chartdraw.Style{
				StrokeColor: theme.line(),
				StrokeWidth: 2.0,
			},
		})
	}
	seriesList = append(seriesList, overlays...)

	yMin, yMax := priceRange(req.Style, s)
	if !math.IsNaN(overlayMin) && overlayMin < yMin {
		yMin = overlayMin
	}
	if !math.IsNaN(overlayMax) && overlayMax > yMax {
		yMax = overlayMax
	}
	yMin, yMax = padRange(yMin, yMax)

	title := req.Title
	if title == "" {
		title = req.Ticker()
	}
	graph := chartdraw.Chart{
		Width:  width,
		Height: height,
		Title:  title,
		TitleStyle: chartdraw.Style{
			FontColor: theme.text(),
			FontSize:  13,
		},
		Background: chartdraw.Style{FillColor: theme.background()},
		Canvas:     chartdraw.Style{FillColor: theme.background()},
		XAxis: chartdraw.XAxis{
			Style: chartdraw.Style{
				FontColor:   theme.text(),
				StrokeColor: theme.grid(),
			},
			TickStyle: chartdraw.Style{FontColor: theme.text()},
			GridMajorStyle: chartdraw.Style{
				StrokeColor: theme.grid().WithAlpha(90),
				StrokeWidth: 1.0,
			},
			Ticks: timeTicks(s, req.Interval, 7),
			Range: &chartdraw.ContinuousRange{
				Min: chartdraw.TimeToFloat64(s.Timestamps[0]),
				Max: chartdraw.TimeToFloat64(s.Timestamps[s.Len()-1]),
			},
		},
		YAxis: chartdraw.YAxis{
			Style: chartdraw.Style{
				FontColor:   theme.text(),
				StrokeColor: theme.grid(),
			},
			TickStyle: chartdraw.Style{FontColor: theme.text()},
			GridMajorStyle: chartdraw.Style{
				StrokeColor: theme.grid().WithAlpha(90),
				StrokeWidth: 1.0,
			},
			Range: &chartdraw.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: seriesList,
	}
	graph.Elements = []chartdraw.Renderable{
		chartdraw.Legend(&graph, chartdraw.Style{
			FillColor:   theme.background(),
			FontColor:   theme.text(),
			StrokeColor: theme.grid(),
		}),
	}

	var buf bytes.Buffer
	if err := graph.Render(chartdraw.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildOverlays computes the requested indicator overlays. Warm-up points
// are NaN in the engine output; each overlay starts at its first defined
// point so short series degrade to fewer (or zero) overlay points instead
// of failing.
func buildOverlays(req Request, s *series.Series) ([]chartdraw.Series, float64, float64) {
	theme := req.Theme
	var out []chartdraw.Series
	lo, hi := math.NaN(), math.NaN()
	colorIdx := 0

	nextColor := func() string {
		c := overlayPalette[colorIdx%len(overlayPalette)]
		colorIdx++
		return c
	}
	addLine := func(name string, line indicator.Line, hex string, dash []float64) {
		ts, vals := definedPoints(s.Timestamps, line)
		if len(ts) < 2 {
			return
		}
		lo, hi = extendRange(lo, hi, vals)
		out = append(out, chartdraw.TimeSeries{
			Name:    name,
			XValues: ts,
			YValues: vals,
			Style: chartdraw.Style{
				StrokeColor:     hexColor(hex),
				StrokeWidth:     1.5,
				StrokeDashArray: dash,
			},
		})
	}

	if req.wantsIndicator(IndicatorSMA20) {
		addLine("SMA 20", indicator.SMA(s, 20), nextColor(), []float64{5.0, 5.0})
	}
	if req.wantsIndicator(IndicatorSMA50) {
		addLine("SMA 50", indicator.SMA(s, 50), nextColor(), []float64{5.0, 5.0})
	}
	if req.wantsIndicator(IndicatorEMA20) {
		addLine("EMA 20", indicator.EMA(s, 20), nextColor(), []float64{8.0, 3.0, 2.0, 3.0})
	}
	if req.wantsIndicator(IndicatorBollinger) {
		upper, _, lower := indicator.Bollinger(s, 20, 2)
		band := newBandSeries(s.Timestamps, upper, lower, theme.accent())
		if band != nil {
			out = append(out, band)
			lo, hi = extendRange(lo, hi, upper.Values)
			lo, hi = extendRange(lo, hi, lower.Values)
		}
	}
	return out, lo, hi
}

// definedClose drops rows without a close value; undefined points are
// skipped, not drawn.
func definedClose(s *series.Series) ([]time.Time, []float64) {
	ts := make([]time.Time, 0, s.Len())
	vals := make([]float64, 0, s.Len())
	for i, v := range s.Close {
		if math.IsNaN(v) {
			continue
		}
		ts = append(ts, s.Timestamps[i])
		vals = append(vals, v)
	}
	return ts, vals
}

// definedPoints keeps only the defined points of a line, dropping both
// the warm-up prefix and any interior gap left by undefined closes.
func definedPoints(ts []time.Time, line indicator.Line) ([]time.Time, []float64) {
	outTs := make([]time.Time, 0, len(ts))
	outVals := make([]float64, 0, len(ts))
	for i, v := range line.Values {
		if math.IsNaN(v) {
			continue
		}
		outTs = append(outTs, ts[i])
		outVals = append(outVals, v)
	}
	return outTs, outVals
}

func extendRange(lo, hi float64, vals []float64) (float64, float64) {
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}

// priceRange finds the raw value extent of the price panel. Candlestick
// panels span high to low; other styles follow close, and the bar style
// is anchored at zero like the volume bars.
func priceRange(style Style, s *series.Series) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	switch style {
	case StyleCandlestick:
		lo, hi = extendRange(lo, hi, s.Low)
		lo, hi = extendRange(lo, hi, s.High)
		lo, hi = extendRange(lo, hi, s.Close)
	case StyleBar:
		lo, hi = extendRange(0, 0, s.Close)
	default:
		lo, hi = extendRange(lo, hi, s.Close)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, 1
	}
	return lo, hi
}

// padRange widens a raw extent by 5%, with a floor so flat series still
// get breathing room. Mirrors the axis padding used across the panels.
func padRange(lo, hi float64) (float64, float64) {
	pad := (hi - lo) * 0.05
	if pad < hi*0.002 {
		pad = hi * 0.002
	}
	if pad == 0 {
		pad = 1
	}
	lo -= pad
	hi += pad
	return lo, hi
}
