package chart

import (
	"strings"

	charts "github.com/vicanso/go-charts/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme maps semantic color roles to hex colors. Themes are immutable;
// sessions switch between the two built-in variants.
type Theme struct {
	Name       string
	Background string
	Text       string
	Grid       string
	Up         string
	Down       string
	Line       string
	Area       string
	Accent     string
}

var (
	Dark = Theme{
		Name:       "dark",
		Background: "#1a1a2e",
		Text:       "#ffffff",
		Grid:       "#333333",
		Up:         "#00ff88",
		Down:       "#ff4444",
		Line:       "#00d4ff",
		Area:       "#00d4ff",
		Accent:     "#ff6b6b",
	}
	Light = Theme{
		Name:       "light",
		Background: "#ffffff",
		Text:       "#333333",
		Grid:       "#cccccc",
		Up:         "#26a65b",
		Down:       "#e74c3c",
		Line:       "#3498db",
		Area:       "#3498db",
		Accent:     "#e74c3c",
	}
)

// overlayPalette is the fixed indicator color rotation, kept stable so
// repeated requests draw overlays in the same order and colors.
var overlayPalette = []string{"#ff9f43", "#ee5a24", "#5f27cd", "#10ac84"}

// ThemeByName resolves a theme selection, defaulting to dark.
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, Light.Name) {
		return Light
	}
	return Dark
}

// chartsTheme maps the theme onto the go-charts built-in palettes used by
// the volume and comparison panels.
func (t Theme) chartsTheme() string {
	if t.Name == Light.Name {
		return charts.ThemeLight
	}
	return charts.ThemeDark
}

func (t Theme) background() drawing.Color { return hexColor(t.Background) }
func (t Theme) text() drawing.Color       { return hexColor(t.Text) }
func (t Theme) grid() drawing.Color       { return hexColor(t.Grid) }
func (t Theme) up() drawing.Color         { return hexColor(t.Up) }
func (t Theme) down() drawing.Color       { return hexColor(t.Down) }
func (t Theme) line() drawing.Color       { return hexColor(t.Line) }
func (t Theme) area() drawing.Color       { return hexColor(t.Area) }
func (t Theme) accent() drawing.Color     { return hexColor(t.Accent) }

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
