package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"RiskRadar/internal/config"
	"RiskRadar/internal/pricecache"
	"RiskRadar/internal/provider"
	"RiskRadar/internal/recorder"
	"RiskRadar/internal/risk"
	"RiskRadar/internal/scheduler"
	"RiskRadar/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] RiskRadar starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init price source
	var src provider.Provider
	if cfg.DataSource.Kind == "rest" {
		src = provider.NewREST(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		src = provider.NewYahoo(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", src.Name())

	// Init cache and analytics
	cache := pricecache.New(src)
	calc := risk.NewCalculator(cache, cfg.Analytics.Benchmark)
	agg := risk.NewAggregator(calc)
	log.Printf("[INFO] benchmark symbol: %s", cfg.Analytics.Benchmark)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cache, cfg.Analytics.Benchmark, cfg.Analytics.Watchlist)
	if err := sched.RegisterAll(cfg.Schedule.PrewarmCron, cfg.Schedule.StatsCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start HTTP server
	srv := server.New(cfg.Server.Addr, calc, agg, cache, rec)
	go func() {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Optional: warm the cache immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, prewarming cache now")
		go sched.RunPrewarmNow()
	}

	log.Println("[INFO] RiskRadar is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] RiskRadar stopped")
}
