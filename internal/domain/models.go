package domain

import "fmt"

// PlaybackSurface identifies the active output destination for playback
type PlaybackSurface int

const (
	// SurfaceLocal renders media on this device
	SurfaceLocal PlaybackSurface = iota
	// SurfaceRenderer hands playback to an external renderer
	SurfaceRenderer
)

func (s PlaybackSurface) String() string {
	switch s {
	case SurfaceLocal:
		return "Local"
	case SurfaceRenderer:
		return "Renderer"
	default:
		return fmt.Sprintf("PlaybackSurface(%d)", int(s))
	}
}

// RendererDescriptor identifies an external playback target
type RendererDescriptor struct {
	// ID is opaque to the session (for MPRIS renderers it is the bus name)
	ID string
	// Name is the human readable label shown to the user
	Name string
}

// PlaybackPosition is a point-in-time report from a playback engine
type PlaybackPosition struct {
	CurrentTimeMillis int64
	DurationMillis    int64
	IsPlaying         bool
}

// Progress returns the position as a 0-100 fraction of the duration.
// A zero duration yields 0.
func (p PlaybackPosition) Progress() int {
	return ProgressOf(p.CurrentTimeMillis, p.DurationMillis)
}

// ProgressOf computes the integer percentage of current over duration
func ProgressOf(current, duration int64) int {
	if duration <= 0 {
		return 0
	}
	return int(float64(current) / float64(duration) * 100)
}

// ToolbarVisibilityState is the chrome state owned by a control surface
type ToolbarVisibilityState struct {
	Visible       bool
	UserScrubbing bool
}

// EventType names a session event crossing the event channel
type EventType string

const (
	// RendererSelectedEvent is published when a renderer becomes (or is replaced as) the active surface
	RendererSelectedEvent EventType = "renderer.selected"
	// RendererClearedEvent is published when playback returns to the local surface
	RendererClearedEvent EventType = "renderer.cleared"
)

// SessionEvent is an immutable notification of a session transition.
// Renderer is only set for RendererSelectedEvent.
type SessionEvent struct {
	Type     EventType
	Renderer RendererDescriptor
}

// RendererSelected builds the event emitted when d becomes the active renderer
func RendererSelected(d RendererDescriptor) SessionEvent {
	return SessionEvent{Type: RendererSelectedEvent, Renderer: d}
}

// RendererCleared builds the event emitted when the renderer is discarded
func RendererCleared() SessionEvent {
	return SessionEvent{Type: RendererClearedEvent}
}

// Glyph is the icon shown on the play/pause button
type Glyph string

const (
	// GlyphPlay is shown while paused
	GlyphPlay Glyph = "play"
	// GlyphPause is shown while playing
	GlyphPause Glyph = "pause"
)

// GlyphFor returns the glyph matching the playing state
func GlyphFor(isPlaying bool) Glyph {
	if isPlaying {
		return GlyphPause
	}
	return GlyphPlay
}

// ScreenResolution holds the display dimensions
type ScreenResolution struct {
	Width  int
	Height int
}
