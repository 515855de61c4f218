package chart

import (
	"errors"
	"math"
	"strings"

	charts "github.com/vicanso/go-charts/v2"

	"stockChartPro/internal/series"
)

// renderVolumePanel draws the traded-volume bars under the price panel.
func renderVolumePanel(req Request, s *series.Series, width, height int) ([]byte, error) {
	labels, values := volumeRow(s)
	if len(values) < 2 {
		return nil, errors.New("not enough volume points")
	}
	yMin, yMax := volumeAxis(values)
	painter, err := charts.BarRender([][]float64{values},
		charts.TitleTextOptionFunc("Volume"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 7}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 4}),
		charts.ThemeOptionFunc(req.Theme.chartsTheme()),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// renderReturnPanel draws both assets as normalized percent return from
// their first close, on one shared axis.
func renderReturnPanel(req Request, a, b *series.Series, width, height int) ([]byte, error) {
	labels, rows := alignPair(req.Interval, a, b, func(s *series.Series) []float64 { return s.Close })
	if len(labels) < 2 {
		return nil, errors.New("not enough overlapping time points")
	}
	names := []string{req.Tickers[0], req.Tickers[1]}

	var yMin, yMax float64
	first := true
	for r := range rows {
		base := 0.0
		for _, v := range rows[r] {
			if v != 0 && !math.IsNaN(v) {
				base = v
				break
			}
		}
		if base == 0 {
			base = 1
		}
		for j, v := range rows[r] {
			pct := (v/base - 1.0) * 100.0
			rows[r][j] = pct
			if math.IsNaN(pct) {
				continue
			}
			if first {
				yMin, yMax = pct, pct
				first = false
			} else {
				if pct < yMin {
					yMin = pct
				}
				if pct > yMax {
					yMax = pct
				}
			}
		}
	}
	pad := (yMax - yMin) * 0.05
	yMin -= pad
	yMax += pad

	seriesList := charts.NewSeriesListDataFromValues(rows, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
		seriesList[i].AxisIndex = 0
	}
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Normalized Return", strings.Join(names, ", ")+" • normalized %"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: 7}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(req.Theme.chartsTheme()),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// renderComparisonVolumePanel draws both assets' volume bars side by side.
func renderComparisonVolumePanel(req Request, a, b *series.Series, width, height int) ([]byte, error) {
	labels, rows := alignPair(req.Interval, a, b, func(s *series.Series) []float64 { return s.Volume })
	if len(labels) < 2 {
		return nil, errors.New("not enough overlapping time points")
	}
	names := []string{req.Tickers[0], req.Tickers[1]}
	var yMax float64
	for r := range rows {
		for j, v := range rows[r] {
			if math.IsNaN(v) {
				rows[r][j] = 0
				continue
			}
			if v > yMax {
				yMax = v
			}
		}
	}
	yMin := 0.0
	yMax *= 1.05

	seriesList := charts.NewSeriesListDataFromValues(rows, charts.ChartTypeBar)
	for i := range seriesList {
		seriesList[i].Name = names[i]
		seriesList[i].AxisIndex = 0
	}
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Volume"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, SplitNumber: 7}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 4}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(req.Theme.chartsTheme()),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// volumeAxis returns the bar-panel extent: volume floors at zero, with the
// same 5% headroom the comparison volume panel applies.
func volumeAxis(values []float64) (float64, float64) {
	var yMax float64
	for _, v := range values {
		if v > yMax {
			yMax = v
		}
	}
	return 0, yMax * 1.05
}

func volumeRow(s *series.Series) ([]string, []float64) {
	labels := make([]string, s.Len())
	values := make([]float64, s.Len())
	for i, t := range s.Timestamps {
		labels[i] = easternTime(t).Format("2006-01-02")
		v := s.Volume[i]
		if math.IsNaN(v) {
			v = 0
		}
		values[i] = v
	}
	return labels, values
}

// alignPair intersects the two series on shared timestamps so comparison
// panels plot point for point even when one asset has gaps.
func alignPair(interval string, a, b *series.Series, pick func(*series.Series) []float64) ([]string, [][]float64) {
	layout := tickLayout(interval)
	valsB := pick(b)
	byTime := make(map[int64]float64, b.Len())
	for i, t := range b.Timestamps {
		byTime[t.Unix()] = valsB[i]
	}

	valsA := pick(a)
	labels := make([]string, 0, a.Len())
	rowA := make([]float64, 0, a.Len())
	rowB := make([]float64, 0, a.Len())
	for i, t := range a.Timestamps {
		vb, ok := byTime[t.Unix()]
		if !ok || math.IsNaN(valsA[i]) || math.IsNaN(vb) {
			continue
		}
		labels = append(labels, easternTime(t).Format(layout))
		rowA = append(rowA, valsA[i])
		rowB = append(rowB, vb)
	}
	return labels, [][]float64{rowA, rowB}
}
