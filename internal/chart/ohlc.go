package chart

import (
	"fmt"
	"math"
	"time"

	chartdraw "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"stockChartPro/internal/indicator"
	"stockChartPro/internal/series"
)

// ohlcSeries renders the candlestick and up/down bar styles. The built-in
// series types cannot express per-point body geometry or direction
// coloring, so this plugs into the renderer's Series extension point.
type ohlcSeries struct {
	name   string
	data   *series.Series
	up     drawing.Color
	down   drawing.Color
	candle bool
}

func (o *ohlcSeries) GetName() string { return o.name }

func (o *ohlcSeries) GetYAxis() chartdraw.YAxisType { return chartdraw.YAxisPrimary }

func (o *ohlcSeries) GetStyle() chartdraw.Style {
	return chartdraw.Style{StrokeColor: o.up, StrokeWidth: 1.0}
}

func (o *ohlcSeries) Validate() error {
	if o.data == nil || o.data.Len() == 0 {
		return fmt.Errorf("ohlc series %s has no points", o.name)
	}
	return nil
}

func (o *ohlcSeries) Len() int { return o.data.Len() }

func (o *ohlcSeries) GetValues(index int) (float64, float64) {
	return chartdraw.TimeToFloat64(o.data.Timestamps[index]), o.data.Close[index]
}

func (o *ohlcSeries) Render(r chartdraw.Renderer, canvasBox chartdraw.Box, xrange, yrange chartdraw.Range, _ chartdraw.Style) {
	s := o.data
	bodyWidth := bodyWidthFor(s.Interval())
	translateX := func(t time.Time) int {
		return canvasBox.Left + xrange.Translate(chartdraw.TimeToFloat64(t))
	}
	translateY := func(v float64) int {
		return canvasBox.Bottom - yrange.Translate(v)
	}
	zeroY := translateY(math.Max(yrange.GetMin(), 0))

	for i := 0; i < s.Len(); i++ {
		open, high, low, close := s.Open[i], s.High[i], s.Low[i], s.Close[i]
		if math.IsNaN(open) || math.IsNaN(close) {
			continue
		}
		t := s.Timestamps[i]
		color := o.up
		if close < open {
			color = o.down
		}
		left := translateX(t.Add(-bodyWidth / 2))
		right := translateX(t.Add(bodyWidth / 2))
		if right-left < 1 {
			right = left + 1
		}

		if !o.candle {
			// Bar style: one bar per point from the baseline to close,
			// colored by direction against open.
			fillRect(r, left, translateY(close), right, zeroY, color)
			continue
		}

		bodyTop := translateY(math.Max(open, close))
		bodyBottom := translateY(math.Min(open, close))
		if bodyBottom-bodyTop < 1 {
			bodyBottom = bodyTop + 1
		}
		fillRect(r, left, bodyTop, right, bodyBottom, color)

		if math.IsNaN(high) || math.IsNaN(low) {
			continue
		}
		center := translateX(t)
		r.SetStrokeColor(color)
		r.SetStrokeWidth(1.0)
		r.MoveTo(center, translateY(high))
		r.LineTo(center, bodyTop)
		r.Stroke()
		r.MoveTo(center, bodyBottom)
		r.LineTo(center, translateY(low))
		r.Stroke()
	}
}

func fillRect(r chartdraw.Renderer, left, top, right, bottom int, color drawing.Color) {
	r.SetFillColor(color)
	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.Close()
	r.Fill()
}

// bodyWidthFor maps the inferred sampling interval onto a candle body
// width, using fixed thresholds: sub-hour data gets minute-wide bodies,
// intraday gets half-hour, daily gets most of a day, coarser gets four.
func bodyWidthFor(interval time.Duration) time.Duration {
	switch {
	case interval <= 0:
		return 14 * time.Hour
	case interval < time.Hour:
		return time.Minute
	case interval < 24*time.Hour:
		return 30 * time.Minute
	case interval < 7*24*time.Hour:
		return time.Duration(0.6 * 24 * float64(time.Hour))
	default:
		return 4 * 24 * time.Hour
	}
}

// bandSeries shades the region between the Bollinger upper and lower
// lines and strokes both edges.
type bandSeries struct {
	name         string
	ts           []time.Time
	upper, lower []float64
	color        drawing.Color
}

// newBandSeries keeps only points where both edges are defined, dropping
// warm-up and interior gaps alike; nil when fewer than two remain.
func newBandSeries(ts []time.Time, upper, lower indicator.Line, color drawing.Color) *bandSeries {
	b := &bandSeries{name: "BB 20", color: color}
	for i := range ts {
		if !upper.Defined(i) || !lower.Defined(i) {
			continue
		}
		b.ts = append(b.ts, ts[i])
		b.upper = append(b.upper, upper.Values[i])
		b.lower = append(b.lower, lower.Values[i])
	}
	if len(b.ts) < 2 {
		return nil
	}
	return b
}

func (b *bandSeries) GetName() string { return b.name }

func (b *bandSeries) GetYAxis() chartdraw.YAxisType { return chartdraw.YAxisPrimary }

func (b *bandSeries) GetStyle() chartdraw.Style {
	return chartdraw.Style{StrokeColor: b.color, StrokeWidth: 1.0}
}

func (b *bandSeries) Validate() error {
	if len(b.ts) < 2 {
		return fmt.Errorf("band series %s has too few points", b.name)
	}
	return nil
}

func (b *bandSeries) Len() int { return len(b.ts) }

func (b *bandSeries) GetValues(index int) (float64, float64) {
	return chartdraw.TimeToFloat64(b.ts[index]), b.upper[index]
}

func (b *bandSeries) Render(r chartdraw.Renderer, canvasBox chartdraw.Box, xrange, yrange chartdraw.Range, _ chartdraw.Style) {
	n := len(b.ts)
	xs := make([]int, n)
	for i, t := range b.ts {
		xs[i] = canvasBox.Left + xrange.Translate(chartdraw.TimeToFloat64(t))
	}
	translateY := func(v float64) int {
		return canvasBox.Bottom - yrange.Translate(v)
	}

	// Shaded band: upper edge forward, lower edge back.
	r.SetFillColor(b.color.WithAlpha(30))
	r.MoveTo(xs[0], translateY(b.upper[0]))
	for i := 1; i < n; i++ {
		r.LineTo(xs[i], translateY(b.upper[i]))
	}
	for i := n - 1; i >= 0; i-- {
		r.LineTo(xs[i], translateY(b.lower[i]))
	}
	r.Close()
	r.Fill()

	for _, edge := range [][]float64{b.upper, b.lower} {
		r.SetStrokeColor(b.color)
		r.SetStrokeWidth(1.0)
		r.SetStrokeDashArray([]float64{2.0, 2.0})
		r.MoveTo(xs[0], translateY(edge[0]))
		for i := 1; i < n; i++ {
			r.LineTo(xs[i], translateY(edge[i]))
		}
		r.Stroke()
	}
}
