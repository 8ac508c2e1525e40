// Package scheduler runs the background sweep that closes expired sessions. Session status
// is derived on read, so the sweep only saves the first reader of a result from computing it.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
)

type ExpiredCloser interface {
	CloseExpired(ctx context.Context) (int, error)
}

type Sweeper struct {
	closer   ExpiredCloser
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSweeper(closer ExpiredCloser, interval time.Duration) *Sweeper {
	return &Sweeper{closer: closer, interval: interval}
}

// Start launches the sweep loop. Calling Start on a running sweeper does nothing.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	ticker := time.NewTicker(s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
	logging.WithComponent("sweeper").Infof("started with interval %s", s.interval)
}

// Stop ends the loop and waits for an in-flight sweep to return. The sweeper can be
// started again afterwards.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	logging.WithComponent("sweeper").Info("stopped")
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.closer.CloseExpired(ctx)
	if err != nil && ctx.Err() == nil {
		logging.WithComponent("sweeper").Errorf("sweep failed after closing %d sessions: %v", n, err)
		return
	}
	if n > 0 {
		logging.WithComponent("sweeper").Infof("closed %d expired sessions", n)
	}
}
