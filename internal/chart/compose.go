package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	chartdraw "github.com/wcharczuk/go-chart/v2"

	"stockChartPro/internal/series"
)

// Render draws a single-asset figure: the styled price panel on top and,
// when volume is present, a volume bar panel underneath.
func Render(req Request, s *series.Series) ([]byte, error) {
	width, height := req.dimensions()
	if !s.HasVolume() {
		return renderPricePanel(req, s, width, height)
	}

	priceHeight := height * 7 / 10
	price, err := renderPricePanel(req, s, width, priceHeight)
	if err != nil {
		return nil, fmt.Errorf("price panel: %w", err)
	}
	volume, err := renderVolumePanel(req, s, width, height-priceHeight)
	if err != nil {
		return nil, fmt.Errorf("volume panel: %w", err)
	}
	return stackPanels(req.Theme, width, [][]byte{price, volume})
}

// RenderComparison draws the two-asset figure: both price panels on the
// top row, the normalized percent-return overlay bottom-left and the
// volume comparison bottom-right. Without volume data the bottom row is
// the return panel alone.
func RenderComparison(req Request, a, b *series.Series) ([]byte, error) {
	if len(req.Tickers) < 2 {
		return nil, fmt.Errorf("comparison needs two tickers, got %d", len(req.Tickers))
	}
	width, height := req.dimensions()
	halfW, halfH := width/2, height/2

	reqA, reqB := req, req
	reqA.Tickers = req.Tickers[:1]
	reqA.Title = req.Tickers[0]
	reqB.Tickers = req.Tickers[1:2]
	reqB.Title = req.Tickers[1]

	priceA, err := renderPricePanel(reqA, a, halfW, halfH)
	if err != nil {
		return nil, fmt.Errorf("%s panel: %w", req.Tickers[0], err)
	}
	priceB, err := renderPricePanel(reqB, b, halfW, halfH)
	if err != nil {
		return nil, fmt.Errorf("%s panel: %w", req.Tickers[1], err)
	}
	topRow, err := joinPanels(req.Theme, halfH, [][]byte{priceA, priceB})
	if err != nil {
		return nil, err
	}

	hasVolume := a.HasVolume() && b.HasVolume()
	returnW := width
	if hasVolume {
		returnW = halfW
	}
	ret, err := renderReturnPanel(req, a, b, returnW, halfH)
	if err != nil {
		return nil, fmt.Errorf("return panel: %w", err)
	}
	bottomRow := ret
	if hasVolume {
		vol, err := renderComparisonVolumePanel(req, a, b, halfW, halfH)
		if err != nil {
			return nil, fmt.Errorf("volume panel: %w", err)
		}
		bottomRow, err = joinPanels(req.Theme, halfH, [][]byte{ret, vol})
		if err != nil {
			return nil, err
		}
	}
	return stackPanels(req.Theme, width, [][]byte{topRow, bottomRow})
}

// timeTicks builds explicit axis ticks so labels land on real samples in
// the exchange timezone, with granularity matched to the interval.
func timeTicks(s *series.Series, interval string, count int) []chartdraw.Tick {
	n := s.Len()
	if n == 0 {
		return nil
	}
	if count < 2 {
		count = 2
	}
	if count > n {
		count = n
	}
	layout := tickLayout(interval)
	ticks := make([]chartdraw.Tick, 0, count)
	step := float64(n-1) / float64(count-1)
	for i := 0; i < count; i++ {
		idx := int(float64(i)*step + 0.5)
		if idx >= n {
			idx = n - 1
		}
		t := s.Timestamps[idx]
		ticks = append(ticks, chartdraw.Tick{
			Value: chartdraw.TimeToFloat64(t),
			Label: easternTime(t).Format(layout),
		})
	}
	return ticks
}

func tickLayout(interval string) string {
	switch {
	case strings.HasSuffix(interval, "m") && !strings.HasSuffix(interval, "mo"):
		return "Jan 02 15:04"
	case strings.HasSuffix(interval, "h"):
		return "Jan 02 15:00"
	case strings.HasSuffix(interval, "mo"):
		return "Jan 2006"
	default:
		return "2006-01-02"
	}
}

// stackPanels composites rendered panels vertically onto one canvas.
func stackPanels(theme Theme, width int, panels [][]byte) ([]byte, error) {
	imgs, totalH, err := decodePanels(panels)
	if err != nil {
		return nil, err
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, totalH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(theme.background()), image.Point{}, draw.Src)
	y := 0
	for _, img := range imgs {
		bounds := img.Bounds()
		dst := image.Rect(0, y, bounds.Dx(), y+bounds.Dy())
		draw.Draw(canvas, dst, img, bounds.Min, draw.Over)
		y += bounds.Dy()
	}
	return encodePNG(canvas)
}

// joinPanels composites rendered panels side by side into one row.
func joinPanels(theme Theme, height int, panels [][]byte) ([]byte, error) {
	imgs, _, err := decodePanels(panels)
	if err != nil {
		return nil, err
	}
	totalW := 0
	for _, img := range imgs {
		totalW += img.Bounds().Dx()
	}
	canvas := image.NewRGBA(image.Rect(0, 0, totalW, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(theme.background()), image.Point{}, draw.Src)
	x := 0
	for _, img := range imgs {
		bounds := img.Bounds()
		dst := image.Rect(x, 0, x+bounds.Dx(), bounds.Dy())
		draw.Draw(canvas, dst, img, bounds.Min, draw.Over)
		x += bounds.Dx()
	}
	return encodePNG(canvas)
}

func decodePanels(panels [][]byte) ([]image.Image, int, error) {
	imgs := make([]image.Image, 0, len(panels))
	totalH := 0
	for i, p := range panels {
		img, err := png.Decode(bytes.NewReader(p))
		if err != nil {
			return nil, 0, fmt.Errorf("decode panel %d: %w", i, err)
		}
		imgs = append(imgs, img)
		totalH += img.Bounds().Dy()
	}
	return imgs, totalH, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
