package session

import (
	"context"
	"sync"
	"time"

	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
)

// PositionSink receives periodic position reports
type PositionSink func(pos domain.PlaybackPosition)

// Poller periodically reads the active engine and forwards the position to a
// sink. Reports are skipped while the user is scrubbing.
type Poller struct {
	logger   *zap.Logger
	session  *Session
	interval time.Duration
	sink     PositionSink

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPoller creates a poller; interval must be positive
func NewPoller(logger *zap.Logger, s *Session, interval time.Duration, sink PositionSink) *Poller {
	return &Poller{
		logger:   logger,
		session:  s,
		interval: interval,
		sink:     sink,
	}
}

// Start launches the polling goroutine. It returns immediately.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true

	p.wg.Add(1)
	go p.runLoop(pollCtx)

	p.logger.Info("Position poller started", zap.Duration("interval", p.interval))
	return nil
}

// Stop ends polling and waits for an in-flight poll to complete
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.cancel()
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("Position poller stopped")
	return nil
}

func (p *Poller) runLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll performs a single read and delivery. It reports whether the sink was called.
func (p *Poller) Poll() bool {
	if p.session.Scrubbing() {
		return false
	}
	p.sink(p.session.CurrentPosition())
	return true
}
