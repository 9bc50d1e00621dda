package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
)

const defaultScrubSettle = 500 * time.Millisecond

// Gestures are the user intents understood by the control surface
type Gestures interface {
	PlayPausePressed()
	Tap()
	CastPressed()
	ScrubStart()
	ScrubEnd(progress int)
}

// Snapshotter writes the current overlay frame somewhere and returns its path
type Snapshotter interface {
	Snapshot() (string, error)
}

type commandKind int

const (
	cmdPlayPause commandKind = iota
	cmdTap
	cmdCast
	cmdScrub
	cmdSnapshot
)

type command struct {
	kind    commandKind
	percent int // cmdScrub only
}

// Engine turns line-oriented text commands into gestures.
// Consecutive scrub commands form one drag: the first starts the scrub and the
// drag ends once no scrub command arrived for the settle period.
type Engine struct {
	logger      *zap.Logger
	input       io.Reader
	gestures    Gestures
	snapshotter Snapshotter
	ui          domain.Dispatcher
	scrubSettle time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewEngine creates a new gesture engine reading from input
func NewEngine(
	logger *zap.Logger,
	input io.Reader,
	gestures Gestures,
	snapshotter Snapshotter,
	ui domain.Dispatcher,
) *Engine {
	return &Engine{
		logger:      logger,
		input:       input,
		gestures:    gestures,
		snapshotter: snapshotter,
		ui:          ui,
		scrubSettle: defaultScrubSettle,
	}
}

// Start launches the engine's command loop in a goroutine.
// It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil
	}
	e.running = true

	loopCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	lines := make(chan string)
	// The reader goroutine is not tracked: a blocked Read cannot be
	// interrupted, it exits at EOF.
	go e.readLines(loopCtx, lines)

	e.wg.Add(1)
	go e.runLoop(loopCtx, lines)

	e.logger.Info("Gesture engine started")
	return nil
}

// Stop ends the command loop, finishing a scrub in progress
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.cancel()
	e.running = false
	e.mu.Unlock()

	e.wg.Wait()
	e.logger.Info("Gesture engine stopped")
	return nil
}

func (e *Engine) readLines(ctx context.Context, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(e.input)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		e.logger.Warn("Failed to read commands", zap.Error(err))
	}
}

// runLoop is the main command processing loop with scrub debouncing
func (e *Engine) runLoop(ctx context.Context, lines <-chan string) {
	defer e.wg.Done()

	timer := time.NewTimer(e.scrubSettle)
	timer.Stop() // Start with stopped timer

	scrubbing := false
	pending := 0

	endScrub := func() {
		if scrubbing {
			e.gestures.ScrubEnd(pending)
			scrubbing = false
		}
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			endScrub()
			e.logger.Debug("Gesture loop stopped")
			return

		case line, ok := <-lines:
			if !ok {
				e.logger.Info("Command input closed")
				lines = nil // keep serving a pending scrub
				continue
			}
			cmd, err := parseCommand(line)
			if err != nil {
				e.logger.Warn("Ignoring command", zap.String("line", line), zap.Error(err))
				continue
			}
			if cmd.kind == cmdScrub {
				if !scrubbing {
					e.gestures.ScrubStart()
					scrubbing = true
				}
				pending = cmd.percent
				timer.Reset(e.scrubSettle)
				continue
			}
			e.dispatch(cmd)

		case <-timer.C:
			// user stopped dragging, seek to the last position
			endScrub()
		}
	}
}

func (e *Engine) dispatch(cmd command) {
	switch cmd.kind {
	case cmdPlayPause:
		e.gestures.PlayPausePressed()
	case cmdTap:
		e.gestures.Tap()
	case cmdCast:
		e.gestures.CastPressed()
	case cmdSnapshot:
		e.ui.Post(func() {
			path, err := e.snapshotter.Snapshot()
			if err != nil {
				e.logger.Error("Failed to write snapshot", zap.Error(err))
				return
			}
			e.logger.Info("Snapshot ready", zap.String("path", path))
		})
	}
}

func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "p":
		return command{kind: cmdPlayPause}, nil
	case "t":
		return command{kind: cmdTap}, nil
	case "c":
		return command{kind: cmdCast}, nil
	case "w":
		return command{kind: cmdSnapshot}, nil
	case "s":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: s <percent>")
		}
		percent, err := strconv.Atoi(strings.TrimSuffix(fields[1], "%"))
		if err != nil {
			return command{}, fmt.Errorf("invalid percent %q: %w", fields[1], err)
		}
		return command{kind: cmdScrub, percent: percent}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}
