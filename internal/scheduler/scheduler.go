package scheduler

import (
	"context"
	"fmt"
	"log"

	"RiskRadar/internal/model"
	"RiskRadar/internal/pricecache"

	"github.com/robfig/cron/v3"
)

// Scheduler keeps the price cache warm for the benchmark and a configured
// watchlist, so dashboard calls rarely pay the provider round-trip.
type Scheduler struct {
	Cron      *cron.Cron
	Cache     *pricecache.Cache
	Benchmark string
	Watchlist []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, cache *pricecache.Cache, benchmark string, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Cache:     cache,
		Benchmark: benchmark,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// RegisterAll registers the prewarm and stats tasks.
func (s *Scheduler) RegisterAll(prewarmCron, statsCron string) error {
	if _, err := s.Cron.AddFunc(prewarmCron, s.prewarmTask); err != nil {
		return fmt.Errorf("register prewarm task: %w", err)
	}
	if _, err := s.Cron.AddFunc(statsCron, s.statsTask); err != nil {
		return fmt.Errorf("register stats task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunPrewarmNow executes the prewarm task immediately (for RUN_ON_START).
func (s *Scheduler) RunPrewarmNow() {
	s.prewarmTask()
}

func (s *Scheduler) prewarmTask() {
	log.Println("[INFO] prewarming price cache")
	symbols := append([]string{s.Benchmark}, s.Watchlist...)
	for _, sym := range symbols {
		if _, err := s.Cache.Get(s.Ctx, sym, model.DefaultWindow); err != nil {
			log.Printf("[WARN] prewarm %s: %v", sym, err)
		}
	}
}

func (s *Scheduler) statsTask() {
	st := s.Cache.Stats()
	log.Printf("[INFO] cache stats: %d entries, ttl %dms", st.CacheSize, st.CacheTimeoutMs)
}
