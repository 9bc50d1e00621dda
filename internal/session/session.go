package session

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Publisher is the part of the event channel the session needs
type Publisher interface {
	Publish(event domain.SessionEvent)
}

// Session owns the active playback surface and routes transport commands to
// the engine that serves it. It is the only writer of surface and renderer.
//
// Events are published synchronously while the command lock is held, so a
// subscriber must not call SelectRenderer, ClearRenderer or ClearRendererIf
// from its handler; post the call to another goroutine instead.
type Session struct {
	logger   *zap.Logger
	events   Publisher
	local    domain.LocalEngine
	renderer domain.RendererEngine

	// cmdMu serializes commands so that engine calls and event publication
	// happen in the order commands were issued
	cmdMu sync.Mutex

	mu       sync.RWMutex
	surface  domain.PlaybackSurface
	target   domain.RendererDescriptor
	epoch    uint64 // bumped on every transition
	lastPos  domain.PlaybackPosition // last good report for the current epoch
	scrubbed atomic.Bool
}

// Snapshot is a consistent read of the session state
type Snapshot struct {
	Surface  domain.PlaybackSurface
	Renderer domain.RendererDescriptor // zero unless Surface is SurfaceRenderer
}

// NewSession creates a session in the local surface
func NewSession(logger *zap.Logger, events Publisher, local domain.LocalEngine, renderer domain.RendererEngine) *Session {
	return &Session{
		logger:   logger,
		events:   events,
		local:    local,
		renderer: renderer,
		surface:  domain.SurfaceLocal,
	}
}

// SelectRenderer makes d the active surface. Selecting while a renderer is
// already active replaces it atomically: only RendererSelected is emitted.
func (s *Session) SelectRenderer(d domain.RendererDescriptor) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.mu.Lock()
	prev := s.surface
	s.surface = domain.SurfaceRenderer
	s.target = d
	s.bumpLocked()
	s.mu.Unlock()

	// the transition is committed; side effects below may fail independently
	var errs error
	if prev == domain.SurfaceLocal {
		if err := s.local.Suspend(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("suspend local engine: %w", err))
		}
	}
	if err := s.renderer.Attach(d); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("attach renderer: %w", err))
	}
	if errs != nil {
		s.logger.Warn("Renderer selection side effects failed",
			zap.String("renderer", d.ID),
			zap.Errors("errors", multierr.Errors(errs)))
	}

	s.logger.Info("Renderer selected",
		zap.String("renderer", d.ID),
		zap.String("name", d.Name),
		zap.Stringer("previous", prev))

	s.events.Publish(domain.RendererSelected(d))
}

// ClearRenderer returns playback to the local surface.
// It is a no-op when the local surface is already active.
func (s *Session) ClearRenderer() {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.clearLocked(func(domain.RendererDescriptor) bool { return true })
}

// ClearRendererIf returns playback to the local surface only while the
// renderer with the given id is the active one. It reports whether it did.
func (s *Session) ClearRendererIf(id string) bool {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	return s.clearLocked(func(cur domain.RendererDescriptor) bool { return cur.ID == id })
}

// clearLocked runs with cmdMu held
func (s *Session) clearLocked(match func(domain.RendererDescriptor) bool) bool {
	s.mu.Lock()
	if s.surface == domain.SurfaceLocal || !match(s.target) {
		s.mu.Unlock()
		return false
	}
	old := s.target
	s.surface = domain.SurfaceLocal
	s.target = domain.RendererDescriptor{}
	s.bumpLocked()
	s.mu.Unlock()

	var errs error
	if err := s.renderer.Detach(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("detach renderer: %w", err))
	}
	if err := s.local.Resume(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("resume local engine: %w", err))
	}
	if errs != nil {
		s.logger.Warn("Renderer clear side effects failed",
			zap.String("renderer", old.ID),
			zap.Errors("errors", multierr.Errors(errs)))
	}

	s.logger.Info("Renderer cleared", zap.String("renderer", old.ID))

	s.events.Publish(domain.RendererCleared())
	return true
}

func (s *Session) bumpLocked() {
	s.epoch++
	s.lastPos = domain.PlaybackPosition{}
}

// PlayPause toggles playback on the active engine
func (s *Session) PlayPause() error {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	engine, surface, _ := s.active()
	pos := s.CurrentPosition()

	if pos.IsPlaying {
		if err := engine.Pause(); err != nil {
			return fmt.Errorf("pause on %s surface: %w", surface, err)
		}
		return nil
	}
	if err := engine.Play(); err != nil {
		return fmt.Errorf("play on %s surface: %w", surface, err)
	}
	return nil
}

// SeekTo moves the active engine to positionMillis clamped to the known
// duration, and ends any scrub in progress. It returns the effective target.
func (s *Session) SeekTo(positionMillis int64) (int64, error) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	s.scrubbed.Store(false)

	engine, surface, _ := s.active()
	pos := s.CurrentPosition()
	target := Clamp(positionMillis, pos.DurationMillis)

	if target != positionMillis {
		s.logger.Debug("Seek target clamped",
			zap.Int64("requested", positionMillis),
			zap.Int64("effective", target),
			zap.Int64("duration", pos.DurationMillis))
	}

	if err := engine.SeekTo(target); err != nil {
		return target, fmt.Errorf("seek on %s surface: %w", surface, err)
	}
	return target, nil
}

// Clamp bounds positionMillis to [0, durationMillis]. An unknown (zero)
// duration only bounds from below.
func Clamp(positionMillis, durationMillis int64) int64 {
	if positionMillis < 0 {
		return 0
	}
	if durationMillis > 0 && positionMillis > durationMillis {
		return durationMillis
	}
	return positionMillis
}

// ScrubStarted marks a user scrub in progress. Position polling pauses until
// the scrub is committed through SeekTo; playback itself continues.
func (s *Session) ScrubStarted() {
	s.scrubbed.Store(true)
	s.logger.Debug("Scrub started")
}

// Scrubbing reports whether a scrub is in progress
func (s *Session) Scrubbing() bool {
	return s.scrubbed.Load()
}

// CurrentSurface returns the active playback surface
func (s *Session) CurrentSurface() domain.PlaybackSurface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surface
}

// CurrentRenderer returns the active renderer, if any
func (s *Session) CurrentRenderer() (domain.RendererDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target, s.surface == domain.SurfaceRenderer
}

// Snapshot returns surface and renderer read together
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Surface: s.surface, Renderer: s.target}
}

// CurrentPosition asks the active engine for its position. When the engine
// has no report the last good value is returned instead.
func (s *Session) CurrentPosition() domain.PlaybackPosition {
	engine, _, epoch := s.active()

	pos, ok := engine.Position()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		return s.lastPos
	}
	if pos.CurrentTimeMillis < 0 {
		pos.CurrentTimeMillis = 0
	}
	if pos.DurationMillis > 0 && pos.CurrentTimeMillis > pos.DurationMillis {
		pos.CurrentTimeMillis = pos.DurationMillis
	}
	// a report from an engine that was swapped out meanwhile is discarded
	if epoch != s.epoch {
		return s.lastPos
	}
	s.lastPos = pos
	return pos
}

func (s *Session) active() (domain.PlaybackEngine, domain.PlaybackSurface, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.surface == domain.SurfaceRenderer {
		return s.renderer, s.surface, s.epoch
	}
	return s.local, s.surface, s.epoch
}
