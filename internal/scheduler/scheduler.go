package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/recorder"
)

const sendRetries = 3

// Scheduler runs watchlist scans on a cron schedule and answers bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Sender
	Recorder  recorder.Recorder
	Watchlist []string
	Interval  model.Interval
	Ctx       context.Context

	scanMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, sender notifier.Sender, rec recorder.Recorder, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  sender,
		Recorder:  rec,
		Watchlist: watchlist,
		Interval:  model.IntervalDaily,
		Ctx:       ctx,
	}
}

// RegisterScan registers the watchlist scan on the given six-field cron spec.
func (s *Scheduler) RegisterScan(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.scanWatchlist); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunScanNow executes the watchlist scan immediately.
func (s *Scheduler) RunScanNow() {
	s.scanWatchlist()
}

// ScanResult summarizes one watchlist pass.
type ScanResult struct {
	Analyzed int
	Alerts   int
	Failed   []string
}

func (s *Scheduler) scanWatchlist() {
	res := s.scan()
	log.WithFields(log.Fields{
		"analyzed": res.Analyzed,
		"alerts":   res.Alerts,
		"failed":   len(res.Failed),
	}).Info("watchlist scan finished")
}

func (s *Scheduler) scan() ScanResult {
	// Overlapping cron ticks and manual triggers run one at a time.
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	var res ScanResult
	log.Infof("scanning %d symbols", len(s.Watchlist))
	for _, sym := range s.Watchlist {
		if s.Ctx.Err() != nil {
			break
		}
		a, err := s.analyze(sym, s.Interval)
		if err != nil {
			log.WithField("symbol", sym).Errorf("scan: %v", err)
			res.Failed = append(res.Failed, sym)
			continue
		}
		res.Analyzed++

		if alert := FormatAlert(a); alert != "" {
			res.Alerts++
			s.trySend(alert)
		}
	}
	if len(res.Failed) > 0 {
		s.trySend(fmt.Sprintf("❌ Scan failed for: %s", html.EscapeString(strings.Join(res.Failed, ", "))))
	}
	return res
}

// analyze collects one symbol and records the result. Recording failures are logged, not returned.
func (s *Scheduler) analyze(symbol string, interval model.Interval) (*model.Analysis, error) {
	a, err := s.Collector.Collect(s.Ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	if err := s.Recorder.RecordAnalysis(a); err != nil {
		log.WithField("symbol", a.Symbol).Errorf("record analysis: %v", err)
	}
	return a, nil
}

// FormatAlert combines the pattern alert and any take-profit warning. Returns "" when nothing is notable.
func FormatAlert(a *model.Analysis) string {
	alert := notifier.FormatPatternAlert(a)
	if a.Signal != nil && a.Signal.Warning != "" {
		warn := fmt.Sprintf("⚠️ <b>%s</b>: %s", html.EscapeString(a.Symbol), html.EscapeString(a.Signal.Warning))
		if alert == "" {
			return warn
		}
		alert += "\n\n" + warn
	}
	return alert
}

const helpText = `Available commands:
• /analyze SYMBOL [1d|1wk] - full indicator report
• /patterns SYMBOL - detected chart patterns
• /watchlist - symbols scanned on schedule
• /scan - scan the watchlist now`

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Telegram group commands arrive as /cmd@BotName.
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])

	switch cmd {
	case "/analyze", "/patterns":
		if len(fields) < 2 {
			return fmt.Sprintf("Usage: %s SYMBOL", cmd)
		}
		interval := model.IntervalDaily
		if len(fields) > 2 {
			interval = model.ParseInterval(fields[2])
		}
		a, err := s.analyze(fields[1], interval)
		if err != nil {
			return commandError(fields[1], err)
		}
		if cmd == "/analyze" {
			return notifier.FormatAnalysis(a)
		}
		if alert := notifier.FormatPatternAlert(a); alert != "" {
			return alert
		}
		return fmt.Sprintf("No patterns detected for <b>%s</b>.", html.EscapeString(a.Symbol))
	case "/watchlist":
		if len(s.Watchlist) == 0 {
			return "Watchlist is empty."
		}
		return "👀 Watchlist: " + html.EscapeString(strings.Join(s.Watchlist, ", "))
	case "/scan":
		res := s.scan()
		return fmt.Sprintf("Scan done: %d analyzed, %d alerts, %d failed.", res.Analyzed, res.Alerts, len(res.Failed))
	default:
		return helpText
	}
}

func commandError(symbol string, err error) string {
	switch {
	case errors.Is(err, collector.ErrInvalidSymbol):
		return fmt.Sprintf("❌ Unknown symbol: %s", html.EscapeString(symbol))
	case errors.Is(err, collector.ErrNoData):
		return fmt.Sprintf("❌ No price data for %s", html.EscapeString(symbol))
	default:
		return fmt.Sprintf("❌ Analysis failed: %s", html.EscapeString(err.Error()))
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Errorf("send notification: %v", err)
	}
}
