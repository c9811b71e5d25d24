package main

import (
	"context"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/api"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/scheduler"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info("analyzer starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()
	fetcher := newFetcher(cfg)
	log.Infof("data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, nil, m, cfg.DataSource.HistoryDays)

	rec := newRecorder(cfg)
	defer rec.Close()

	sender, bot := newSender(cfg)

	sched := scheduler.NewScheduler(ctx, col, sender, rec, cfg.Watchlist)
	sched.Interval = model.ParseInterval(cfg.Schedule.Interval)
	if err := sched.RegisterScan(cfg.Schedule.ScanCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if bot != nil {
		go bot.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	if cfg.Schedule.RunOnStart {
		log.Info("run_on_start enabled, scanning watchlist now")
		go sched.RunScanNow()
	}

	srv := api.NewServer(col, rec, m)
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		return err
	}
	log.Info("analyzer stopped")
	return nil
}
