package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
)

// ClockEngine is a local engine without a decoder: the position advances
// with wall-clock time while playing and stops at the media duration.
type ClockEngine struct {
	logger   *zap.Logger
	duration time.Duration
	now      func() time.Time

	mu        sync.Mutex
	position  time.Duration // position at startedAt
	startedAt time.Time
	playing   bool
	suspended bool
}

// NewClockEngine creates a paused engine holding media of the configured duration
func NewClockEngine(logger *zap.Logger, cfg domain.Config) *ClockEngine {
	return &ClockEngine{
		logger:   logger,
		duration: cfg.GetMediaDuration(),
		now:      time.Now,
	}
}

// Play starts or continues playback. While suspended the intent is kept and
// the clock resumes with Resume.
func (e *ClockEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settleLocked()
	if e.position >= e.duration {
		// replay from the start once the end was reached
		e.position = 0
	}
	e.playing = true
	e.logger.Debug("Local playback started", zap.Duration("position", e.position))
	return nil
}

// Pause freezes the position
func (e *ClockEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settleLocked()
	e.playing = false
	e.logger.Debug("Local playback paused", zap.Duration("position", e.position))
	return nil
}

// SeekTo jumps to positionMillis
func (e *ClockEngine) SeekTo(positionMillis int64) error {
	target := time.Duration(positionMillis) * time.Millisecond
	if target < 0 || target > e.duration {
		return fmt.Errorf("seek target %v outside media of %v", target, e.duration)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.settleLocked()
	e.position = target
	return nil
}

// Position reports the current clock position
func (e *ClockEngine) Position() (domain.PlaybackPosition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settleLocked()
	return domain.PlaybackPosition{
		CurrentTimeMillis: e.position.Milliseconds(),
		DurationMillis:    e.duration.Milliseconds(),
		IsPlaying:         e.playing && !e.suspended,
	}, true
}

// Suspend parks the engine while another surface plays
func (e *ClockEngine) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settleLocked()
	e.suspended = true
	e.logger.Info("Local playback suspended", zap.Duration("position", e.position))
	return nil
}

// Resume undoes Suspend
func (e *ClockEngine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settleLocked()
	e.suspended = false
	e.logger.Info("Local playback resumed", zap.Duration("position", e.position))
	return nil
}

// settleLocked folds the elapsed time into position and restarts the clock
func (e *ClockEngine) settleLocked() {
	now := e.now()
	if e.playing && !e.suspended && !e.startedAt.IsZero() {
		e.position += now.Sub(e.startedAt)
		if e.position >= e.duration {
			e.position = e.duration
			e.playing = false
			e.logger.Info("Local playback reached end of media")
		}
	}
	e.startedAt = now
}
