package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type task struct {
	key string
	fn  func()
}

// Loop is the single goroutine that owns every visual mutation.
// Posting never blocks: work is queued and the loop is woken.
type Loop struct {
	logger *zap.Logger

	mu      sync.Mutex
	queue   []*task
	latest  map[string]*task // pending coalesced task per key
	dropped int
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	wake            chan struct{}
	lastDropWarning time.Time
}

// NewLoop creates an idle UI loop; call Start to begin draining it
func NewLoop(logger *zap.Logger) *Loop {
	return &Loop{
		logger: logger,
		latest: make(map[string]*task),
		wake:   make(chan struct{}, 1),
	}
}

// Post queues fn behind everything posted before it
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, &task{fn: fn})
	l.mu.Unlock()
	l.signal()
}

// PostLatest queues fn under key. A still-pending task with the same key is
// dropped, so only the newest update for a key survives.
func (l *Loop) PostLatest(key string, fn func()) {
	t := &task{key: key, fn: fn}

	l.mu.Lock()
	if old, ok := l.latest[key]; ok {
		old.fn = nil
		l.dropped++
	}
	l.latest[key] = t
	l.queue = append(l.queue, t)
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
		// already signalled
	}
}

// Start launches the loop goroutine. It returns immediately.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.running = true
	l.mu.Unlock()

	l.wg.Add(1)
	go l.run(loopCtx)

	l.logger.Info("UI loop started")
	return nil
}

// Stop cancels the loop and waits for the task in progress to finish
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return nil
	}
	l.cancel()
	l.running = false
	l.mu.Unlock()

	l.wg.Wait()
	l.logger.Info("UI loop stopped")
	return nil
}

func (l *Loop) run(ctx context.Context) {
	defer l.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
			l.drain()
		}
	}
}

// drain runs everything queued so far in posting order
func (l *Loop) drain() {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	clear(l.latest)
	dropped := l.dropped
	l.dropped = 0
	l.mu.Unlock()

	if dropped > 0 {
		l.logDropped(dropped)
	}

	for _, t := range batch {
		if t.fn == nil {
			continue
		}
		if err := l.runTask(t); err != nil {
			l.logger.Error("UI task failed", zap.String("key", t.key), zap.Error(err))
		}
	}
}

func (l *Loop) runTask(t *task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	t.fn()
	return nil
}

// logDropped reports superseded updates at most once every few seconds
func (l *Loop) logDropped(n int) {
	const warningInterval = 5 * time.Second
	now := time.Now()
	if now.Sub(l.lastDropWarning) < warningInterval {
		return
	}
	l.lastDropWarning = now
	l.logger.Debug("Superseded UI updates dropped", zap.Int("count", n))
}

// Immediate runs posted work on the calling goroutine.
// Useful for tests and for hosts that are already on their UI goroutine.
type Immediate struct{}

// Post runs fn now
func (Immediate) Post(fn func()) { fn() }

// PostLatest runs fn now
func (Immediate) PostLatest(_ string, fn func()) { fn() }
