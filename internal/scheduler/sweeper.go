package scheduler

import (
	"context"
	"log"
	"time"

	"hedniya-backend/internal/usecase/notifier"
)

// Sweeper is the periodic background pass: re-derive time-dependent loan
// statuses, then dispatch due notifications. It runs on its own timer and
// never blocks request handlers; each pass works in bounded batches.
type Sweeper struct {
	notifier  *notifier.Usecase
	interval  time.Duration
	batchSize int
}

func New(n *notifier.Usecase, interval time.Duration, batchSize int) *Sweeper {
	return &Sweeper{notifier: n, interval: interval, batchSize: batchSize}
}

// Run blocks until ctx is cancelled. Errors are logged and the next tick
// retries; a broken store must not kill the process.
func (s *Sweeper) Run(ctx context.Context) {
	log.Printf("sweeper: started (interval=%s batch=%d)", s.interval, s.batchSize)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pass(ctx)
		case <-ctx.Done():
			log.Println("sweeper: stopped")
			return
		}
	}
}

func (s *Sweeper) pass(ctx context.Context) {
	flipped, err := s.notifier.SweepStatuses(ctx, s.batchSize)
	if err != nil {
		log.Printf("sweeper: status sweep failed: %v", err)
	} else if flipped > 0 {
		log.Printf("sweeper: %d loan(s) flipped to OVERDUE", flipped)
	}

	sent, err := s.notifier.DispatchDue(ctx, s.batchSize)
	if err != nil {
		log.Printf("sweeper: dispatch failed: %v", err)
	} else if sent > 0 {
		log.Printf("sweeper: %d notification(s) sent", sent)
	}
}
