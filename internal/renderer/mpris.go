package renderer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/genricoloni/castshell/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
)

// MprisEngine drives an MPRIS media player on the session bus as a playback renderer
type MprisEngine struct {
	logger  *zap.Logger
	dial    func() (DBusClient, error)
	mu      sync.RWMutex
	conn    DBusClient // Interface for testability
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup // Tracks the signal watcher

	attached bool
	target   domain.RendererDescriptor
	owner    string // unique bus name currently owning target.ID
	onLost   func(domain.RendererDescriptor)
}

// NewMprisEngine creates a detached MPRIS renderer engine
func NewMprisEngine(logger *zap.Logger) *MprisEngine {
	return &MprisEngine{
		logger: logger,
		dial: func() (DBusClient, error) {
			return NewSessionBusClient()
		},
	}
}

// SetLostHandler registers fn to be called when the attached player leaves the bus.
// fn runs on the signal watcher goroutine.
func (e *MprisEngine) SetLostHandler(fn func(domain.RendererDescriptor)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onLost = fn
}

// Start connects to the session bus and begins watching player lifecycle.
// A missing session bus is not fatal: the engine stays usable but every Attach fails.
func (e *MprisEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.mu.Unlock()

	conn, err := e.dial()
	if err != nil {
		e.logger.Warn("Session bus unavailable, casting disabled", zap.Error(err))
		return nil
	}

	// Check if we were stopped while connecting to D-Bus
	if err := ctx.Err(); err != nil {
		if cerr := conn.Close(); cerr != nil {
			e.logger.Warn("Failed to close D-Bus connection", zap.Error(cerr))
		}
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		return err
	}

	watchCtx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	e.conn = conn
	e.cancel = cancel
	e.mu.Unlock()

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		// Non-fatal, continue without loss detection
		e.logger.Warn("Failed to add NameOwnerChanged match signal", zap.Error(err))
	}

	e.wg.Add(1)
	go e.watchSignals(watchCtx, conn)

	e.logger.Info("MPRIS renderer engine started")
	return nil
}

// Stop gracefully stops the engine
func (e *MprisEngine) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.running = false
	e.mu.Unlock()

	e.logger.Debug("Waiting for signal watcher to finish")
	e.wg.Wait()

	e.mu.Lock()
	if e.conn != nil {
		if err := e.conn.Close(); err != nil {
			e.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
		}
		e.conn = nil
	}
	e.attached = false
	e.mu.Unlock()

	e.logger.Info("MPRIS renderer engine shutdown complete")
	return nil
}

// Attach points the engine at the player named by d.ID
func (e *MprisEngine) Attach(d domain.RendererDescriptor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn == nil {
		return fmt.Errorf("attach %s: %w", d.ID, domain.ErrNoPlayer)
	}

	owner, err := e.conn.GetNameOwner(d.ID)
	if err != nil {
		return fmt.Errorf("attach %s: %w: %w", d.ID, domain.ErrNoPlayer, err)
	}

	e.attached = true
	e.target = d
	e.owner = owner

	e.logger.Info("Attached to MPRIS player",
		zap.String("player", d.ID),
		zap.String("unique", owner))
	return nil
}

// Detach forgets the current player; the remote player keeps its own state
func (e *MprisEngine) Detach() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.attached {
		return nil
	}
	e.logger.Info("Detached from MPRIS player", zap.String("player", e.target.ID))
	e.attached = false
	e.target = domain.RendererDescriptor{}
	e.owner = ""
	return nil
}

// Play resumes playback on the attached player
func (e *MprisEngine) Play() error {
	return e.call("Play")
}

// Pause pauses playback on the attached player
func (e *MprisEngine) Pause() error {
	return e.call("Pause")
}

// SeekTo moves the attached player to positionMillis. SetPosition needs the
// current track id; players that do not expose one get a relative Seek.
func (e *MprisEngine) SeekTo(positionMillis int64) error {
	conn, player, err := e.attachedPlayer()
	if err != nil {
		return err
	}

	targetMicros := positionMillis * 1000

	metadata, _ := e.metadata(conn, player)
	if trackVar, ok := metadata["mpris:trackid"]; ok {
		if trackID, ok := trackIDOf(trackVar); ok {
			if err := conn.Call(player, mprisObjectPath, playerInterface+".SetPosition", trackID, targetMicros); err != nil {
				return fmt.Errorf("set position on %s: %w", player, err)
			}
			return nil
		}
	}

	current, err := conn.GetProperty(player, mprisObjectPath, playerInterface+".Position")
	if err != nil {
		return fmt.Errorf("read position of %s: %w", player, err)
	}
	currentMicros, ok := int64Of(current)
	if !ok {
		return fmt.Errorf("invalid position format from %s", player)
	}

	if err := conn.Call(player, mprisObjectPath, playerInterface+".Seek", targetMicros-currentMicros); err != nil {
		return fmt.Errorf("seek on %s: %w", player, err)
	}
	return nil
}

// Position reads the attached player's position, length and status.
// ok is false when detached or when the player cannot report a position.
func (e *MprisEngine) Position() (domain.PlaybackPosition, bool) {
	conn, player, err := e.attachedPlayer()
	if err != nil {
		return domain.PlaybackPosition{}, false
	}

	posVar, err := conn.GetProperty(player, mprisObjectPath, playerInterface+".Position")
	if err != nil {
		e.logger.Debug("Failed to read renderer position", zap.String("player", player), zap.Error(err))
		return domain.PlaybackPosition{}, false
	}
	micros, ok := int64Of(posVar)
	if !ok {
		return domain.PlaybackPosition{}, false
	}

	pos := domain.PlaybackPosition{CurrentTimeMillis: micros / 1000}

	// SAFE CAST: players with nothing loaded may return no length
	if metadata, err := e.metadata(conn, player); err == nil {
		if lengthVar, ok := metadata["mpris:length"]; ok {
			if length, ok := int64Of(lengthVar); ok {
				pos.DurationMillis = length / 1000
			}
		}
	}

	if statusVar, err := conn.GetProperty(player, mprisObjectPath, playerInterface+".PlaybackStatus"); err == nil {
		if status, ok := statusVar.Value().(string); ok {
			pos.IsPlaying = status == "Playing"
		}
	}

	return pos, true
}

// Available lists the MPRIS players currently on the session bus
func (e *MprisEngine) Available() ([]domain.RendererDescriptor, error) {
	e.mu.RLock()
	conn := e.conn
	e.mu.RUnlock()

	if conn == nil {
		return nil, domain.ErrNoPlayer
	}

	names, err := conn.ListNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	var out []domain.RendererDescriptor
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		d := domain.RendererDescriptor{ID: name, Name: strings.TrimPrefix(name, mprisPrefix)}
		if v, err := conn.GetProperty(name, mprisObjectPath, "org.mpris.MediaPlayer2.Identity"); err == nil {
			if identity, ok := v.Value().(string); ok && identity != "" {
				d.Name = identity
			}
		}
		out = append(out, d)
	}

	e.logger.Debug("Renderer listing complete", zap.Int("count", len(out)))
	return out, nil
}

func (e *MprisEngine) call(method string) error {
	conn, player, err := e.attachedPlayer()
	if err != nil {
		return err
	}
	if err := conn.Call(player, mprisObjectPath, playerInterface+"."+method); err != nil {
		return fmt.Errorf("%s on %s: %w", method, player, err)
	}
	return nil
}

func (e *MprisEngine) attachedPlayer() (DBusClient, string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.attached || e.conn == nil {
		return nil, "", domain.ErrRendererNotAttached
	}
	return e.conn, e.target.ID, nil
}

func (e *MprisEngine) metadata(conn DBusClient, player string) (map[string]dbus.Variant, error) {
	variant, err := conn.GetProperty(player, mprisObjectPath, playerInterface+".Metadata")
	if err != nil {
		return nil, err
	}
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("metadata of %s is %T, not a map", player, variant.Value())
	}
	return metadata, nil
}

// watchSignals listens for player lifecycle signals
func (e *MprisEngine) watchSignals(ctx context.Context, conn DBusClient) {
	defer e.wg.Done()

	signals := make(chan *dbus.Signal, 10)
	conn.Signal(signals)

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("Signal watcher stopped")
			return
		case sig := <-signals:
			if sig == nil || sig.Name != "org.freedesktop.DBus.NameOwnerChanged" {
				continue
			}
			e.handleNameOwnerChanged(sig)
		}
	}
}

// handleNameOwnerChanged reacts to the attached player leaving or moving on the bus
func (e *MprisEngine) handleNameOwnerChanged(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}

	name, ok := sig.Body[0].(string)
	if !ok || !strings.HasPrefix(name, mprisPrefix) {
		return // Not an MPRIS player
	}
	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	e.mu.Lock()
	if !e.attached || e.target.ID != name {
		e.mu.Unlock()
		return
	}

	if newOwner != "" {
		e.owner = newOwner
		e.mu.Unlock()
		e.logger.Debug("MPRIS player ownership changed",
			zap.String("player", name),
			zap.String("oldUnique", oldOwner),
			zap.String("newUnique", newOwner))
		return
	}

	lost := e.target
	onLost := e.onLost
	e.attached = false
	e.target = domain.RendererDescriptor{}
	e.owner = ""
	e.mu.Unlock()

	e.logger.Warn("Attached MPRIS player left the bus", zap.String("player", name))
	if onLost != nil {
		onLost(lost)
	}
}

func int64Of(v dbus.Variant) (int64, bool) {
	switch n := v.Value().(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}

func trackIDOf(v dbus.Variant) (dbus.ObjectPath, bool) {
	switch id := v.Value().(type) {
	case dbus.ObjectPath:
		return id, id.IsValid()
	case string:
		p := dbus.ObjectPath(id)
		return p, p.IsValid()
	default:
		return "", false
	}
}
