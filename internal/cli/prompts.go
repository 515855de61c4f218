package cli

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"stockChartPro/internal/chart"
	"stockChartPro/internal/market"
)

// Action is a top level menu selection.
type Action string

const (
	ActionChart     Action = "chart"
	ActionCompare   Action = "compare"
	ActionSummary   Action = "summary"
	ActionDividends Action = "dividends"
	ActionSettings  Action = "settings"
	ActionQuit      Action = "quit"
)

const customOption = "custom…"

// PromptMainMenu asks what to do next. Quitting is a normal selection,
// not an error.
func PromptMainMenu(tickers []string) (Action, string, error) {
	options := make([]string, 0, len(tickers)+5)
	for _, t := range tickers {
		options = append(options, "📈 Chart "+t)
	}
	options = append(options,
		"⚖️  Compare "+strings.Join(tickers, " vs "),
		"📊 Summary report",
		"💰 Dividend history",
		"⚙️  Settings",
		"🚪 Quit",
	)

	var choice string
	prompt := &survey.Select{
		Message: "What would you like to do?",
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return ActionQuit, "", err
	}

	switch {
	case strings.HasPrefix(choice, "📈"):
		return ActionChart, strings.TrimPrefix(choice, "📈 Chart "), nil
	case strings.HasPrefix(choice, "⚖️"):
		return ActionCompare, "", nil
	case strings.HasPrefix(choice, "📊"):
		return ActionSummary, "", nil
	case strings.HasPrefix(choice, "💰"):
		return ActionDividends, "", nil
	case strings.HasPrefix(choice, "⚙️"):
		return ActionSettings, "", nil
	default:
		return ActionQuit, "", nil
	}
}

// PromptTicker picks one symbol from the configured watchlist.
func PromptTicker(tickers []string) (string, error) {
	var ticker string
	prompt := &survey.Select{
		Message: "Which fund?",
		Options: tickers,
	}
	err := survey.AskOne(prompt, &ticker)
	return ticker, err
}

// PromptPeriod picks the historical span. The custom entry accepts
// free-form provider tokens such as "100d" verbatim.
func PromptPeriod(current string) (string, error) {
	options := append(append([]string{}, market.Periods...), customOption)
	var choice string
	prompt := &survey.Select{
		Message: "Period:",
		Options: options,
		Default: defaultOption(options, current, "1y"),
		Help:    "How much history to fetch. Pick custom for free-form tokens like 100d.",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	if choice != customOption {
		return choice, nil
	}
	var custom string
	input := &survey.Input{
		Message: "Custom period:",
		Help:    "Passed to the provider verbatim, e.g. 100d.",
	}
	err := survey.AskOne(input, &custom, survey.WithValidator(survey.Required))
	return strings.TrimSpace(custom), err
}

// PromptInterval picks the sampling granularity, defaulting to a value
// that the provider accepts for the chosen period.
func PromptInterval(period, current string) (string, error) {
	options := append(append([]string{}, market.Intervals...), customOption)
	def := current
	if def == "" {
		def = DefaultIntervalFor(period)
	}
	var choice string
	prompt := &survey.Select{
		Message: "Interval:",
		Options: options,
		Default: defaultOption(options, def, "1d"),
		Help:    "Minute intervals only work with short periods.",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	if choice != customOption {
		return choice, nil
	}
	var custom string
	input := &survey.Input{Message: "Custom interval:"}
	err := survey.AskOne(input, &custom, survey.WithValidator(survey.Required))
	return strings.TrimSpace(custom), err
}

// DefaultIntervalFor maps a period onto a granularity the provider
// accepts for that span.
func DefaultIntervalFor(period string) string {
	switch period {
	case "1d":
		return "5m"
	case "5d":
		return "30m"
	case "1mo":
		return "1h"
	case "3mo", "6mo", "1y":
		return "1d"
	case "2y", "5y":
		return "1wk"
	case "10y", "max":
		return "1mo"
	default:
		return "1d"
	}
}

// PromptStyle picks how the price panel is drawn.
func PromptStyle() (chart.Style, error) {
	options := []string{
		string(chart.StyleLine),
		string(chart.StyleArea),
		string(chart.StyleBar),
		string(chart.StyleCandlestick),
	}
	var choice string
	prompt := &survey.Select{
		Message: "Chart style:",
		Options: options,
		Default: string(chart.StyleLine),
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return chart.Style(choice), nil
}

// PromptIndicators picks zero or more overlays.
func PromptIndicators() ([]chart.Indicator, error) {
	options := make([]string, len(chart.AllIndicators))
	for i, ind := range chart.AllIndicators {
		options[i] = string(ind)
	}
	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Indicators:",
		Options: options,
		Help:    "Space to toggle, enter to confirm. None is fine.",
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	out := make([]chart.Indicator, len(selected))
	for i, s := range selected {
		out[i] = chart.Indicator(s)
	}
	return out, nil
}

// SettingsChoice is one entry of the settings submenu.
type SettingsChoice string

const (
	SettingsTheme     SettingsChoice = "theme"
	SettingsPortfolio SettingsChoice = "portfolio"
	SettingsBack      SettingsChoice = "back"
)

// PromptSettings picks a settings submenu entry.
func PromptSettings() (SettingsChoice, error) {
	options := []string{
		"🎨 Change theme",
		"💼 Portfolio overview",
		"↩️  Back",
	}
	var choice string
	prompt := &survey.Select{
		Message: "Settings:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return SettingsBack, err
	}
	switch {
	case strings.HasPrefix(choice, "🎨"):
		return SettingsTheme, nil
	case strings.HasPrefix(choice, "💼"):
		return SettingsPortfolio, nil
	default:
		return SettingsBack, nil
	}
}

// PromptTheme switches the active theme.
func PromptTheme(current string) (chart.Theme, error) {
	options := []string{chart.Dark.Name, chart.Light.Name}
	var choice string
	prompt := &survey.Select{
		Message: "Theme:",
		Options: options,
		Default: defaultOption(options, current, chart.Dark.Name),
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return chart.Theme{}, err
	}
	return chart.ThemeByName(choice), nil
}

// PromptSave asks whether and where to save the rendered chart. An empty
// filename means use the timestamped default.
func PromptSave() (bool, string, error) {
	var save bool
	confirm := &survey.Confirm{
		Message: "Save chart to file?",
		Default: true,
	}
	if err := survey.AskOne(confirm, &save); err != nil {
		return false, "", err
	}
	if !save {
		return false, "", nil
	}
	var name string
	input := &survey.Input{
		Message: "Filename (empty for timestamped default):",
	}
	if err := survey.AskOne(input, &name); err != nil {
		return false, "", err
	}
	return true, strings.TrimSpace(name), nil
}

func defaultOption(options []string, want, fallback string) string {
	for _, o := range options {
		if o == want {
			return o
		}
	}
	return fallback
}
