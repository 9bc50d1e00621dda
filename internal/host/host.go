package host

import (
	"sync"

	"github.com/genricoloni/castshell/internal/domain"
	"github.com/genricoloni/castshell/internal/events"
	"github.com/genricoloni/castshell/internal/session"
	"go.uber.org/zap"
)

const refreshKey = "host.surface"

// Subscriber is the part of the event channel a host needs
type Subscriber interface {
	Subscribe(types []domain.EventType, handler events.Handler) *events.Subscription
	Unsubscribe(sub *events.Subscription)
}

// StateReader exposes the current session state
type StateReader interface {
	Snapshot() session.Snapshot
}

// PlayerHost is the UI container of the player. While attached it keeps the
// surface view in line with the session's active surface.
type PlayerHost struct {
	logger *zap.Logger
	events Subscriber
	state  StateReader
	view   domain.SurfaceView
	ui     domain.Dispatcher

	mu    sync.Mutex
	sub   *events.Subscription
	shown *session.Snapshot // last variant rendered, nil before the first refresh
}

// NewPlayerHost creates a detached host
func NewPlayerHost(logger *zap.Logger, subscriber Subscriber, state StateReader, view domain.SurfaceView, ui domain.Dispatcher) *PlayerHost {
	return &PlayerHost{
		logger: logger,
		events: subscriber,
		state:  state,
		view:   view,
		ui:     ui,
	}
}

// Attach subscribes to session events and renders the current state.
// Events published while detached are not replayed.
func (h *PlayerHost) Attach() {
	h.mu.Lock()
	if h.sub != nil {
		h.mu.Unlock()
		return
	}
	h.sub = h.events.Subscribe(
		[]domain.EventType{domain.RendererSelectedEvent, domain.RendererClearedEvent},
		h.onEvent,
	)
	h.shown = nil
	h.mu.Unlock()

	h.logger.Info("Player host attached")
	h.ui.PostLatest(refreshKey, h.refresh)
}

// Detach unsubscribes; pending refreshes become no-ops
func (h *PlayerHost) Detach() {
	h.mu.Lock()
	sub := h.sub
	h.sub = nil
	h.mu.Unlock()

	if sub == nil {
		return
	}
	h.events.Unsubscribe(sub)
	h.logger.Info("Player host detached")
}

// Attached reports whether the host is subscribed
func (h *PlayerHost) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sub != nil
}

func (h *PlayerHost) onEvent(e domain.SessionEvent) error {
	h.logger.Debug("Session event received",
		zap.String("type", string(e.Type)),
		zap.String("renderer", e.Renderer.ID))
	// the event only triggers the refresh; state is read on the UI goroutine
	h.ui.PostLatest(refreshKey, h.refresh)
	return nil
}

// refresh runs on the UI goroutine
func (h *PlayerHost) refresh() {
	snap := h.state.Snapshot()

	h.mu.Lock()
	if h.sub == nil || (h.shown != nil && *h.shown == snap) {
		h.mu.Unlock()
		return
	}
	h.shown = &snap
	h.mu.Unlock()

	switch snap.Surface {
	case domain.SurfaceRenderer:
		h.view.ShowRenderer(snap.Renderer)
	default:
		h.view.ShowLocal()
	}
}
