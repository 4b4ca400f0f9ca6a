package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"roomscout/config"
	"roomscout/sam"
	"roomscout/workers"
)

// Scheduler re-runs the configured keyword discoveries and resolves every
// discovered room on a cron expression or fixed interval.
type Scheduler struct {
	cfg    *config.Config
	sam    *sam.Client
	pool   *workers.ResolvePool
	cron   *cron.Cron
	ticker *time.Ticker
	stopCh chan struct{}
}

func New(cfg *config.Config, samClient *sam.Client, pool *workers.ResolvePool) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		sam:    samClient,
		pool:   pool,
		cron:   cron.New(),
		stopCh: make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.cfg.Scheduler.Keywords) == 0 {
		log.Println("No discovery keywords configured, scheduler idle")
	}

	switch {
	case s.cfg.Scheduler.Cron != "":
		log.Printf("Starting scheduler with cron: %s", s.cfg.Scheduler.Cron)
		_, err := s.cron.AddFunc(s.cfg.Scheduler.Cron, func() { s.runAll(ctx) })
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		s.cron.Start()
	case s.cfg.Scheduler.Interval > 0:
		log.Printf("Starting scheduler with interval: %s", s.cfg.Scheduler.Interval)
		s.ticker = time.NewTicker(s.cfg.Scheduler.Interval)
		go func() {
			for {
				select {
				case <-s.ticker.C:
					s.runAll(ctx)
				case <-s.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	default:
		log.Println("No schedule configured, scheduler runs on demand only")
	}

	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopCh)
}

// TriggerNow runs one discovery and resolution pass immediately, without
// waiting for the first scheduled tick.
func (s *Scheduler) TriggerNow(ctx context.Context) {
	s.runAll(ctx)
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, keyword := range s.cfg.Scheduler.Keywords {
		ids, err := s.sam.SearchKeyword(ctx, keyword, s.cfg.Resolver.PropertyType, s.cfg.Resolver.MaxSearchPage)
		if err != nil {
			log.Printf("Warning: discovery %q: %v", keyword, err)
		}
		if len(ids) == 0 {
			log.Printf("Discovery %q: no rooms found", keyword)
			continue
		}
		_, stats := s.pool.Run(ctx, "keyword:"+keyword, ids)
		log.Printf("Discovery %q: %s", keyword, stats.ToJSON())
	}
}
