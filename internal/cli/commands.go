package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stockChartPro/internal/chart"
	"stockChartPro/internal/config"
	"stockChartPro/internal/market"
	"stockChartPro/internal/report"
	"stockChartPro/internal/series"
)

const version = "1.0.0"

// NewRootCmd builds the command tree. Running with no subcommand starts
// the interactive session.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "chartpro",
		Short: "Interactive stock charts and reports for VOO & JEPI",
		Long: `chartpro fetches price history, computes technical indicators and renders
multi-panel charts for the configured funds, either interactively or one
shot from the command line.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewSession(cfg).Run()
		},
	}

	rootCmd.AddCommand(newChartCmd(cfg))
	rootCmd.AddCommand(newSummaryCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newChartCmd renders one chart without the interactive menus.
func newChartCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart [TICKER]",
		Short: "Render a chart for one ticker and save it",
		Long: `Render a chart straight from flags and save it to the output directory.
Example: chartpro chart VOO --period=1y --interval=1d --style=candlestick --indicators=sma20,bollinger`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := strings.ToUpper(args[0])
			period, _ := cmd.Flags().GetString("period")
			interval, _ := cmd.Flags().GetString("interval")
			style, _ := cmd.Flags().GetString("style")
			indicators, _ := cmd.Flags().GetStringSlice("indicators")
			themeName, _ := cmd.Flags().GetString("theme")
			out, _ := cmd.Flags().GetString("out")

			if interval == "" {
				interval = DefaultIntervalFor(period)
			}
			req := chart.Request{
				Tickers:  []string{ticker},
				Period:   period,
				Interval: interval,
				Style:    chart.Style(style),
				Theme:    chart.ThemeByName(themeName),
				Width:    cfg.ChartWidth,
				Height:   cfg.ChartHeight,
			}
			for _, ind := range indicators {
				req.Indicators = append(req.Indicators, chart.Indicator(strings.TrimSpace(ind)))
			}

			provider := market.NewProvider(cfg.HTTPTimeout)
			raw, err := provider.History(context.Background(), ticker, period, interval)
			if err != nil {
				return err
			}
			data, err := series.Normalize(raw)
			if err != nil {
				return err
			}
			img, err := chart.Render(req, data)
			if err != nil {
				return err
			}
			path, err := chart.SaveFile(cfg.OutputDir, out, img)
			if err != nil {
				return err
			}
			DisplaySuccess("Saved " + path)
			return nil
		},
	}

	cmd.Flags().String("period", "1y", "history span, e.g. 1mo, 1y, max, 100d")
	cmd.Flags().String("interval", "", "sampling interval, e.g. 5m, 1d (auto per period)")
	cmd.Flags().String("style", "line", "line, area, bar or candlestick")
	cmd.Flags().StringSlice("indicators", nil, "overlays: sma20,sma50,ema20,bollinger")
	cmd.Flags().String("theme", "dark", "dark or light")
	cmd.Flags().String("out", "", "output filename (timestamped default)")
	return cmd
}

// newSummaryCmd prints the statistics report without rendering.
func newSummaryCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [TICKER]",
		Short: "Print the period statistics for one ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := strings.ToUpper(args[0])
			period, _ := cmd.Flags().GetString("period")

			provider := market.NewProvider(cfg.HTTPTimeout)
			raw, err := provider.History(context.Background(), ticker, period, DefaultIntervalFor(period))
			if err != nil {
				return err
			}
			data, err := series.Normalize(raw)
			if err != nil {
				return err
			}
			info, err := provider.Info(ticker)
			if err != nil {
				info = nil
			}
			fmt.Println(report.FormatSummary(report.Summarize(ticker, data, info)))
			return nil
		},
	}
	cmd.Flags().String("period", "1y", "history span")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("chartpro %s\n", version)
		},
	}
}
