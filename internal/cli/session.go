package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"

	"stockChartPro/internal/chart"
	"stockChartPro/internal/config"
	"stockChartPro/internal/market"
	"stockChartPro/internal/report"
	"stockChartPro/internal/series"
)

// Session drives the interactive loop. It owns the only mutable state of
// the process: the active theme and the period/interval selections, plus
// the render and report caches. Every chart request reads that state and
// nothing else.
type Session struct {
	cfg      config.Config
	provider *market.Provider
	quote    func(ticker string) (*market.StockInfo, error)
	cache    *chart.Cache
	reports  *chart.Cache
	theme    chart.Theme
	period   string
	interval string
}

func NewSession(cfg config.Config) *Session {
	provider := market.NewProvider(cfg.HTTPTimeout)
	return &Session{
		cfg:      cfg,
		provider: provider,
		quote:    provider.Info,
		cache:    chart.NewCache(cfg.CacheTTL),
		reports:  chart.NewCache(cfg.CacheTTL),
		theme:    chart.Dark,
		period:   "1y",
		interval: "1d",
	}
}

// Run loops over the main menu until the user quits. Request failures are
// shown and control returns to the menu; they never end the session.
func (s *Session) Run() error {
	DisplayBanner()
	for {
		action, ticker, err := PromptMainMenu(s.cfg.Tickers)
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}

		switch action {
		case ActionQuit:
			DisplayInfo("Goodbye!")
			return nil
		case ActionChart:
			err = s.chartOne(ticker)
		case ActionCompare:
			err = s.compare()
		case ActionSummary:
			err = s.summary()
		case ActionDividends:
			err = s.dividends()
		case ActionSettings:
			err = s.settings()
		}
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			DisplayError(err)
		}
	}
}

func (s *Session) chartOne(ticker string) error {
	req, err := s.buildRequest([]string{ticker})
	if err != nil {
		return err
	}
	img, summary, err := s.singleChart(req)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return s.offerSave(img)
}

// singleChart renders one asset's figure plus its statistics report,
// serving both from the session caches when fresh. The report always
// accompanies the chart, cached or not.
func (s *Session) singleChart(req chart.Request) ([]byte, string, error) {
	key := req.CacheKey()
	img, imgOK := s.cache.Get(key)
	text, textOK := s.reports.Get(key)
	if imgOK && textOK {
		log.Printf("session: cache hit for %s", key)
		return img, string(text), nil
	}

	ticker := req.Ticker()
	data, err := s.fetch(ticker, req.Period, req.Interval)
	if err != nil {
		return nil, "", err
	}
	img, err = chart.Render(req, data)
	if err != nil {
		return nil, "", fmt.Errorf("render %s: %w", ticker, err)
	}
	summary := report.FormatSummary(report.Summarize(ticker, data, s.quoteInfo(ticker)))
	s.cache.Set(key, img)
	s.reports.Set(key, []byte(summary))
	return img, summary, nil
}

func (s *Session) compare() error {
	if len(s.cfg.Tickers) < 2 {
		return errors.New("comparison needs two configured tickers")
	}
	req, err := s.buildRequest(s.cfg.Tickers[:2])
	if err != nil {
		return err
	}
	img, text, err := s.comparisonChart(req)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return s.offerSave(img)
}

// comparisonChart renders the two-asset figure and its comparison
// report, both cached under the same key so a repeated request still
// prints the report.
func (s *Session) comparisonChart(req chart.Request) ([]byte, string, error) {
	key := req.CacheKey()
	img, imgOK := s.cache.Get(key)
	text, textOK := s.reports.Get(key)
	if imgOK && textOK {
		log.Printf("session: cache hit for %s", key)
		return img, string(text), nil
	}

	pair := req.Tickers
	a, err := s.fetch(pair[0], req.Period, req.Interval)
	if err != nil {
		return nil, "", err
	}
	b, err := s.fetch(pair[1], req.Period, req.Interval)
	if err != nil {
		return nil, "", err
	}
	img, err = chart.RenderComparison(req, a, b)
	if err != nil {
		return nil, "", fmt.Errorf("render comparison: %w", err)
	}

	sumA := report.Summarize(pair[0], a, s.quoteInfo(pair[0]))
	sumB := report.Summarize(pair[1], b, s.quoteInfo(pair[1]))
	summary := report.FormatComparison(report.Compare(sumA, sumB))
	s.cache.Set(key, img)
	s.reports.Set(key, []byte(summary))
	return img, summary, nil
}

func (s *Session) summary() error {
	ticker, err := PromptTicker(s.cfg.Tickers)
	if err != nil {
		return err
	}
	period, err := PromptPeriod(s.period)
	if err != nil {
		return err
	}
	s.period = period
	s.interval = DefaultIntervalFor(period)

	data, err := s.fetch(ticker, s.period, s.interval)
	if err != nil {
		return err
	}
	sum := report.Summarize(ticker, data, s.quoteInfo(ticker))
	fmt.Println(report.FormatSummary(sum))
	return nil
}

func (s *Session) dividends() error {
	ticker, err := PromptTicker(s.cfg.Tickers)
	if err != nil {
		return err
	}
	period, err := PromptPeriod(s.period)
	if err != nil {
		return err
	}
	divs, err := s.provider.Dividends(context.Background(), ticker, period)
	if err != nil {
		return err
	}
	fmt.Println(report.FormatDividends(ticker, divs))
	return nil
}

func (s *Session) settings() error {
	for {
		choice, err := PromptSettings()
		if err != nil {
			return err
		}
		switch choice {
		case SettingsTheme:
			theme, err := PromptTheme(s.theme.Name)
			if err != nil {
				return err
			}
			s.theme = theme
			DisplaySuccess("Theme set to " + theme.Name)
		case SettingsPortfolio:
			fmt.Println(s.portfolio())
		case SettingsBack:
			return nil
		}
	}
}

// portfolio builds the quick quote overview of the configured funds.
func (s *Session) portfolio() string {
	infos := make([]*market.StockInfo, 0, len(s.cfg.Tickers))
	for _, ticker := range s.cfg.Tickers {
		infos = append(infos, s.quoteInfo(ticker))
	}
	return report.FormatPortfolio(infos)
}

// buildRequest walks the user through the per-chart choices and bundles
// them with the session state into one immutable request.
func (s *Session) buildRequest(tickers []string) (chart.Request, error) {
	DisplaySection("Chart " + strings.Join(tickers, " vs "))

	period, err := PromptPeriod(s.period)
	if err != nil {
		return chart.Request{}, err
	}
	if period != s.period {
		s.interval = DefaultIntervalFor(period)
	}
	s.period = period

	interval, err := PromptInterval(period, s.interval)
	if err != nil {
		return chart.Request{}, err
	}
	s.interval = interval

	style, err := PromptStyle()
	if err != nil {
		return chart.Request{}, err
	}
	indicators, err := PromptIndicators()
	if err != nil {
		return chart.Request{}, err
	}

	return chart.Request{
		Tickers:    tickers,
		Period:     period,
		Interval:   interval,
		Style:      style,
		Indicators: indicators,
		Theme:      s.theme,
		Width:      s.cfg.ChartWidth,
		Height:     s.cfg.ChartHeight,
	}, nil
}

func (s *Session) fetch(ticker, period, interval string) (*series.Series, error) {
	log.Printf("session: fetching %s period=%s interval=%s", ticker, period, interval)
	raw, err := s.provider.History(context.Background(), ticker, period, interval)
	if err != nil {
		return nil, err
	}
	return series.Normalize(raw)
}

// quoteInfo is best effort; a failed quote lookup just means the summary
// renders without the info block.
func (s *Session) quoteInfo(ticker string) *market.StockInfo {
	info, err := s.quote(ticker)
	if err != nil {
		log.Printf("session: quote lookup failed for %s: %v", ticker, err)
		return nil
	}
	return info
}

func (s *Session) offerSave(img []byte) error {
	save, name, err := PromptSave()
	if err != nil {
		return err
	}
	if !save {
		return nil
	}
	path, err := chart.SaveFile(s.cfg.OutputDir, name, img)
	if err != nil {
		return err
	}
	DisplaySuccess("Saved " + path)
	return nil
}
