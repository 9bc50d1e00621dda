package controls

import (
	"sync"
	"time"

	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
)

const configureKey = "controls.configure"

// Commands is the playback session as seen from the control surface
type Commands interface {
	PlayPause() error
	SeekTo(positionMillis int64) (int64, error)
	ScrubStarted()
}

// RendererPicker is invoked when the user asks to cast
type RendererPicker func()

// stopper is the part of *time.Timer the controller uses
type stopper interface {
	Stop() bool
}

// Controller drives the transport chrome: glyph, position texts, progress
// and the header/footer bars. It never owns playback state.
type Controller struct {
	logger    *zap.Logger
	target    domain.RenderTarget
	ui        domain.Dispatcher
	cmds      Commands
	picker    RendererPicker
	hideDelay time.Duration
	afterFunc func(d time.Duration, f func()) stopper

	mu             sync.Mutex
	state          domain.ToolbarVisibilityState
	durationMillis int64
	timer          stopper
	timerGen       uint64 // invalidates callbacks of cancelled timers
}

// NewController creates a controller with the chrome visible.
// picker may be nil when no renderer can be offered.
func NewController(logger *zap.Logger, target domain.RenderTarget, ui domain.Dispatcher, cmds Commands, picker RendererPicker, hideDelay time.Duration) *Controller {
	return &Controller{
		logger:    logger,
		target:    target,
		ui:        ui,
		cmds:      cmds,
		picker:    picker,
		hideDelay: hideDelay,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		state: domain.ToolbarVisibilityState{Visible: true},
	}
}

// Start shows the chrome and arms the auto-hide timer once
func (c *Controller) Start() {
	c.ui.Post(func() { c.target.SetChromeVisible(true) })
	c.StartToolbarHideTimer()
}

// Stop cancels any pending auto-hide
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelHideTimerLocked()
}

// Configure syncs the transport widgets with a playback report.
// It may be called from any goroutine; only the newest report is rendered.
func (c *Controller) Configure(isPlaying bool, currentTimeMillis, durationMillis int64) {
	glyph := domain.GlyphFor(isPlaying)
	progress := domain.ProgressOf(currentTimeMillis, durationMillis)
	positionText := FormatClock(currentTimeMillis)
	durationText := FormatClock(durationMillis)

	c.mu.Lock()
	c.durationMillis = durationMillis
	c.mu.Unlock()

	c.ui.PostLatest(configureKey, func() {
		// a drag may have started after the report was queued
		c.mu.Lock()
		scrubbing := c.state.UserScrubbing
		c.mu.Unlock()

		c.target.SetGlyph(glyph)
		if !scrubbing {
			// the user's thumb wins over programmatic updates
			c.target.SetProgress(progress)
		}
		c.target.SetPositionText(positionText)
		c.target.SetDurationText(durationText)
	})
}

// ConfigurePosition is Configure taking a playback report
func (c *Controller) ConfigurePosition(pos domain.PlaybackPosition) {
	c.Configure(pos.IsPlaying, pos.CurrentTimeMillis, pos.DurationMillis)
}

// Tap is the toggle gesture on the media surface. It cancels a pending
// auto-hide and flips the chrome, unless the user is scrubbing.
func (c *Controller) Tap() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelHideTimerLocked()

	if c.state.UserScrubbing {
		return
	}
	if c.state.Visible {
		c.hideLocked()
		return
	}
	c.showLocked()
}

// StartToolbarHideTimer arms the one-shot auto-hide timer, replacing any
// pending one. Manual toggles cancel it without re-arming.
func (c *Controller) StartToolbarHideTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelHideTimerLocked()
	gen := c.timerGen
	c.timer = c.afterFunc(c.hideDelay, func() {
		c.onHideTimer(gen)
	})
}

func (c *Controller) onHideTimer(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.timerGen || c.timer == nil {
		// cancelled before this callback got the lock
		return
	}
	c.timer = nil

	if c.hideLocked() {
		c.logger.Debug("Toolbars auto-hidden", zap.Duration("delay", c.hideDelay))
	}
}

func (c *Controller) cancelHideTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

func (c *Controller) hideLocked() bool {
	if !c.state.Visible || c.state.UserScrubbing {
		return false
	}
	c.state.Visible = false
	c.ui.Post(func() { c.target.SetChromeVisible(false) })
	return true
}

func (c *Controller) showLocked() bool {
	if c.state.Visible || c.state.UserScrubbing {
		return false
	}
	c.state.Visible = true
	c.ui.Post(func() { c.target.SetChromeVisible(true) })
	return true
}

// ScrubStart marks the beginning of a drag on the progress control
func (c *Controller) ScrubStart() {
	c.mu.Lock()
	c.state.UserScrubbing = true
	c.mu.Unlock()

	c.cmds.ScrubStarted()
}

// ScrubEnd commits a drag: the final 0-100 progress value becomes a seek
func (c *Controller) ScrubEnd(progress int) {
	c.mu.Lock()
	c.state.UserScrubbing = false
	duration := c.durationMillis
	c.mu.Unlock()

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	requested := int64(progress) * duration / 100

	effective, err := c.cmds.SeekTo(requested)
	if err != nil {
		c.logger.Warn("Seek failed",
			zap.Int("progress", progress),
			zap.Int64("position", effective),
			zap.Error(err))
		return
	}
	c.logger.Debug("Seek committed",
		zap.Int("progress", progress),
		zap.Int64("position", effective))
}

// PlayPausePressed forwards the play/pause button
func (c *Controller) PlayPausePressed() {
	if err := c.cmds.PlayPause(); err != nil {
		c.logger.Warn("Play/pause failed", zap.Error(err))
	}
}

// CastPressed forwards the cast action to the renderer picker
func (c *Controller) CastPressed() {
	if c.picker == nil {
		c.logger.Info("Cast requested but no renderer picker configured")
		return
	}
	c.picker()
}

// State returns a copy of the chrome state
func (c *Controller) State() domain.ToolbarVisibilityState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
