package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/castshell/internal/config"
	"github.com/genricoloni/castshell/internal/controls"
	"github.com/genricoloni/castshell/internal/domain"
	"github.com/genricoloni/castshell/internal/engine"
	"github.com/genricoloni/castshell/internal/events"
	"github.com/genricoloni/castshell/internal/host"
	"github.com/genricoloni/castshell/internal/overlay"
	"github.com/genricoloni/castshell/internal/player"
	"github.com/genricoloni/castshell/internal/renderer"
	"github.com/genricoloni/castshell/internal/session"
	"github.com/genricoloni/castshell/internal/ui"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the application graph. Callers supply config.Args and the
// command input as an io.Reader.
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		config.NewViper,
		newLogger,
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),
		overlay.NewScreenResolution,
		overlay.NewCanvas,
		ui.NewLoop,
		events.NewChannel,
		player.NewClockEngine,
		renderer.NewMprisEngine,
		newSession,
		newRendererPicker,
		newController,
		newPlayerHost,
		newPoller,
		newGestureEngine,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		fx.Supply(
			config.Args(os.Args[1:]),
			fx.Annotate(os.Stdin, fx.As(new(io.Reader))),
		),
		AppOptions,
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger creates a production zap logger at the configured level
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(config.LogLevel(v))
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newSession(logger *zap.Logger, ch *events.Channel, local *player.ClockEngine, r *renderer.MprisEngine) *session.Session {
	s := session.NewSession(logger, ch, local, r)

	// a renderer that leaves the bus sends playback back to this device
	r.SetLostHandler(func(d domain.RendererDescriptor) {
		s.ClearRendererIf(d.ID)
	})
	return s
}

// newRendererPicker returns the cast action: it leaves an active renderer,
// otherwise selects the configured renderer or the first player on the bus.
func newRendererPicker(logger *zap.Logger, cfg domain.Config, s *session.Session, r *renderer.MprisEngine) controls.RendererPicker {
	return func() {
		if _, ok := s.CurrentRenderer(); ok {
			s.ClearRenderer()
			return
		}

		d, ok := chooseRenderer(logger, cfg.GetRenderer(), r)
		if !ok {
			logger.Warn("No renderer available to cast to")
			return
		}
		s.SelectRenderer(d)
	}
}

// rendererLister is the part of the MPRIS engine used to pick a renderer
type rendererLister interface {
	Available() ([]domain.RendererDescriptor, error)
}

func chooseRenderer(logger *zap.Logger, preferred string, lister rendererLister) (domain.RendererDescriptor, bool) {
	available, err := lister.Available()
	if err != nil {
		logger.Warn("Failed to list renderers", zap.Error(err))
	}

	if preferred != "" {
		for _, d := range available {
			if d.ID == preferred {
				return d, true
			}
		}
		if err == nil {
			logger.Info("Configured renderer not on the bus", zap.String("renderer", preferred))
			return domain.RendererDescriptor{}, false
		}
		return domain.RendererDescriptor{ID: preferred, Name: preferred}, true
	}

	if len(available) == 0 {
		return domain.RendererDescriptor{}, false
	}
	return available[0], true
}

func newController(logger *zap.Logger, cfg domain.Config, canvas *overlay.Canvas, loop *ui.Loop, s *session.Session, picker controls.RendererPicker) *controls.Controller {
	return controls.NewController(logger, canvas, loop, s, picker, cfg.GetToolbarHideDelay())
}

func newPlayerHost(logger *zap.Logger, ch *events.Channel, s *session.Session, canvas *overlay.Canvas, loop *ui.Loop) *host.PlayerHost {
	return host.NewPlayerHost(logger, ch, s, canvas, loop)
}

func newPoller(logger *zap.Logger, cfg domain.Config, s *session.Session, ctrl *controls.Controller) *session.Poller {
	return session.NewPoller(logger, s, cfg.GetPositionPollInterval(), ctrl.ConfigurePosition)
}

func newGestureEngine(logger *zap.Logger, input io.Reader, ctrl *controls.Controller, canvas *overlay.Canvas, loop *ui.Loop) *engine.Engine {
	return engine.NewEngine(logger, input, ctrl, canvas, loop)
}

// registerHooks sets up application lifecycle hooks. Stop hooks run in reverse order.
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	loop *ui.Loop,
	r *renderer.MprisEngine,
	h *host.PlayerHost,
	ctrl *controls.Controller,
	poller *session.Poller,
	gestures *engine.Engine,
) {
	lc.Append(fx.Hook{OnStart: loop.Start, OnStop: loop.Stop})
	lc.Append(fx.Hook{OnStart: r.Start, OnStop: r.Stop})
	lc.Append(fx.StartStopHook(h.Attach, h.Detach))
	lc.Append(fx.StartStopHook(ctrl.Start, ctrl.Stop))
	lc.Append(fx.Hook{OnStart: poller.Start, OnStop: poller.Stop})
	lc.Append(fx.Hook{OnStart: gestures.Start, OnStop: gestures.Stop})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("CastShell Started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return nil
		},
	})
}
