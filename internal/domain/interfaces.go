package domain

import (
	"errors"
	"time"
)

var (
	// ErrRendererNotAttached is returned by renderer engines asked to act without a target
	ErrRendererNotAttached = errors.New("renderer not attached")
	// ErrNoPlayer is returned when a renderer target is no longer reachable
	ErrNoPlayer = errors.New("renderer player not available")
)

// PlaybackEngine is the transport surface shared by every engine
//
//go:generate mockgen -destination=mocks/engine_mock.go -package=mocks github.com/genricoloni/castshell/internal/domain LocalEngine,RendererEngine
type PlaybackEngine interface {
	Play() error
	Pause() error
	// SeekTo moves playback to an already clamped position
	SeekTo(positionMillis int64) error
	// Position returns the latest report; ok is false when the position is unknown
	Position() (pos PlaybackPosition, ok bool)
}

// LocalEngine renders on this device and can be parked while a renderer is active
type LocalEngine interface {
	PlaybackEngine
	// Suspend stops local rendering without discarding the media
	Suspend() error
	// Resume restarts local rendering after Suspend
	Resume() error
}

// RendererEngine drives an external renderer chosen by descriptor
type RendererEngine interface {
	PlaybackEngine
	// Attach points the engine at d, replacing any previous target
	Attach(d RendererDescriptor) error
	// Detach releases the current target
	Detach() error
}

// RenderTarget is the abstract view the control surface draws into
type RenderTarget interface {
	SetGlyph(g Glyph)
	SetPositionText(text string)
	SetDurationText(text string)
	SetProgress(progress int)
	// SetChromeVisible slides the header and footer bars in or out
	SetChromeVisible(visible bool)
}

// SurfaceView is the host-side view switched by the active playback surface
type SurfaceView interface {
	ShowLocal()
	ShowRenderer(d RendererDescriptor)
}

// Dispatcher hands work to the single UI-owning goroutine without blocking
type Dispatcher interface {
	// Post queues fn in order
	Post(fn func())
	// PostLatest queues fn, replacing any not-yet-run function posted under key
	PostLatest(key string, fn func())
}

// Config defines the interface for application configuration
type Config interface {
	// GetToolbarHideDelay returns the auto-hide delay for the chrome
	GetToolbarHideDelay() time.Duration

	// GetPositionPollInterval returns how often the active engine is polled
	GetPositionPollInterval() time.Duration

	// GetMediaDuration returns the length of the media loaded in the local engine
	GetMediaDuration() time.Duration

	// GetSnapshotDir returns the directory overlay snapshots are written to
	GetSnapshotDir() string

	// GetRenderer returns the MPRIS bus name used by the cast action, if any
	GetRenderer() string
}
