package chart

import "strings"

// Style selects how the price panel draws the series. Styles are mutually
// exclusive per request.
type Style string

const (
	StyleLine        Style = "line"
	StyleArea        Style = "area"
	StyleBar         Style = "bar"
	StyleCandlestick Style = "candlestick"
)

// Indicator names an overlay drawn on top of the price panel.
type Indicator string

const (
	IndicatorSMA20     Indicator = "sma20"
	IndicatorSMA50     Indicator = "sma50"
	IndicatorEMA20     Indicator = "ema20"
	IndicatorBollinger Indicator = "bollinger"
)

// AllIndicators lists every supported overlay in drawing order.
var AllIndicators = []Indicator{IndicatorSMA20, IndicatorSMA50, IndicatorEMA20, IndicatorBollinger}

// Request bundles everything one chart render needs. Build it fresh per
// request and do not mutate it after handing it to the composer.
type Request struct {
	Tickers    []string
	Period     string
	Interval   string
	Style      Style
	Indicators []Indicator
	Theme      Theme
	Title      string
	Width      int
	Height     int
}

// Ticker returns the primary symbol of the request.
func (r Request) Ticker() string {
	if len(r.Tickers) == 0 {
		return ""
	}
	return r.Tickers[0]
}

func (r Request) wantsIndicator(name Indicator) bool {
	for _, ind := range r.Indicators {
		if ind == name {
			return true
		}
	}
	return false
}

// dimensions returns the figure size with fallback defaults applied.
func (r Request) dimensions() (int, int) {
	width, height := r.Width, r.Height
	if width <= 0 {
		width = 1200
	}
	if height <= 0 {
		height = 800
	}
	return width, height
}

// CacheKey identifies a render result for the session cache.
func (r Request) CacheKey() string {
	parts := []string{
		strings.ToUpper(strings.Join(r.Tickers, ",")),
		r.Period, r.Interval, string(r.Style), r.Theme.Name,
	}
	for _, ind := range r.Indicators {
		parts = append(parts, string(ind))
	}
	return strings.Join(parts, "|")
}
