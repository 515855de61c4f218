package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockChartPro/internal/market"
)

var (
	boxStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2).
		Width(56)

	headingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	gainStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	lossStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Width(18)
)

// FormatSummary renders one asset's statistics as a bordered panel.
func FormatSummary(s Summary) string {
	var content strings.Builder
	content.WriteString(headingStyle.Render(fmt.Sprintf("📊 %s Summary", s.Ticker)) + "\n\n")
	if s.Info != nil && s.Info.Name != "" {
		content.WriteString(row("Name", s.Info.Name))
	}
	content.WriteString(row("Latest Close", formatPrice(s.LatestClose)))
	content.WriteString(row("Period High", formatPrice(s.PeriodHigh)))
	content.WriteString(row("Period Low", formatPrice(s.PeriodLow)))
	content.WriteString(row("Period Return", returnCell(s.Return)))
	content.WriteString(row("Data Points", fmt.Sprintf("%d", s.Points)))
	if s.Info != nil {
		if s.Info.DividendYield > 0 {
			content.WriteString(row("Dividend Yield", fmt.Sprintf("%.2f%%", s.Info.DividendYield*100)))
		}
		if s.Info.PERatio > 0 {
			content.WriteString(row("P/E Ratio", fmt.Sprintf("%.2f", s.Info.PERatio)))
		}
		if s.Info.High52w > 0 {
			content.WriteString(row("52w Range", fmt.Sprintf("%s - %s", formatPrice(s.Info.Low52w), formatPrice(s.Info.High52w))))
		}
	}
	return boxStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// FormatComparison renders the two-asset report with the outperformer
// called out, or an explicit tie line when returns match exactly.
func FormatComparison(c Comparison) string {
	var content strings.Builder
	content.WriteString(headingStyle.Render(fmt.Sprintf("⚖️  %s vs %s", c.A.Ticker, c.B.Ticker)) + "\n\n")
	content.WriteString(row(c.A.Ticker+" Return", returnCell(c.A.Return)))
	content.WriteString(row(c.B.Ticker+" Return", returnCell(c.B.Return)))
	content.WriteString(row("Differential", fmt.Sprintf("%.2f%%", c.Differential)))
	if c.Outperformer == "" {
		content.WriteString(row("Outperformer", "tie"))
	} else {
		content.WriteString(row("Outperformer", gainStyle.Render("🏆 "+c.Outperformer)))
	}
	return boxStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// FormatPortfolio renders the quick quote overview of the configured
// funds: price, day change and dividend yield per row. Funds whose quote
// lookup failed are skipped.
func FormatPortfolio(infos []*market.StockInfo) string {
	var content strings.Builder
	content.WriteString(headingStyle.Render("💼 Portfolio Overview") + "\n\n")
	shown := 0
	for _, info := range infos {
		if info == nil {
			continue
		}
		shown++
		change := fmt.Sprintf("%+.2f (%+.2f%%)", info.Change, info.ChangePercent)
		style := gainStyle
		if info.Change < 0 {
			style = lossStyle
		}
		yield := "N/A"
		if info.DividendYield > 0 {
			yield = fmt.Sprintf("%.2f%%", info.DividendYield*100)
		}
		content.WriteString(row(info.Ticker,
			fmt.Sprintf("%s  %s  yield %s", formatPrice(info.Price), style.Render(change), yield)))
	}
	if shown == 0 {
		content.WriteString("Could not fetch stock information.")
	}
	return boxStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// FormatDividends renders the payment history for one asset.
func FormatDividends(ticker string, divs []market.Dividend) string {
	var content strings.Builder
	content.WriteString(headingStyle.Render(fmt.Sprintf("💰 %s Dividends", ticker)) + "\n\n")
	if len(divs) == 0 {
		content.WriteString("No dividends paid in this period.")
		return boxStyle.Render(content.String())
	}
	for _, d := range divs {
		content.WriteString(row(d.Date.Format("2006-01-02"), "$"+d.Amount.StringFixed(4)))
	}
	content.WriteString("\n")
	content.WriteString(row("Total", "$"+market.DividendTotal(divs).StringFixed(4)))
	content.WriteString(row("Payments", fmt.Sprintf("%d", len(divs))))
	return boxStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(label) + " " + value + "\n"
}

func returnCell(v float64) string {
	text := formatPct(v)
	if v >= 0 {
		return gainStyle.Render(text)
	}
	return lossStyle.Render(text)
}
