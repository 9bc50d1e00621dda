package player

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

type mockConfig struct {
	duration time.Duration
}

func (m *mockConfig) GetToolbarHideDelay() time.Duration     { return 3 * time.Second }
func (m *mockConfig) GetPositionPollInterval() time.Duration { return 500 * time.Millisecond }
func (m *mockConfig) GetMediaDuration() time.Duration        { return m.duration }
func (m *mockConfig) GetSnapshotDir() string                 { return "/tmp/castshell-test" }
func (m *mockConfig) GetRenderer() string                    { return "" }

// manualClock is advanced explicitly by the tests
type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time          { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(duration time.Duration) (*ClockEngine, *manualClock) {
	clk := &manualClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := NewClockEngine(zap.NewNop(), &mockConfig{duration: duration})
	e.now = clk.now
	return e, clk
}

func TestClockEngine_Playback(t *testing.T) {
	tests := []struct {
		name        string
		steps       func(e *ClockEngine, clk *manualClock)
		wantMillis  int64
		wantPlaying bool
	}{
		{
			name:        "Initially Paused At Zero",
			steps:       func(*ClockEngine, *manualClock) {},
			wantMillis:  0,
			wantPlaying: false,
		},
		{
			name: "Advances While Playing",
			steps: func(e *ClockEngine, clk *manualClock) {
				_ = e.Play()
				clk.advance(30 * time.Second)
			},
			wantMillis:  30000,
			wantPlaying: true,
		},
		{
			name: "Frozen While Paused",
			steps: func(e *ClockEngine, clk *manualClock) {
				_ = e.Play()
				clk.advance(10 * time.Second)
				_ = e.Pause()
				clk.advance(time.Minute)
			},
			wantMillis:  10000,
			wantPlaying: false,
		},
		{
			name: "Frozen While Suspended",
			steps: func(e *ClockEngine, clk *manualClock) {
				_ = e.Play()
				clk.advance(5 * time.Second)
				_ = e.Suspend()
				clk.advance(time.Minute)
			},
			wantMillis:  5000,
			wantPlaying: false,
		},
		{
			name: "Resume Continues",
			steps: func(e *ClockEngine, clk *manualClock) {
				_ = e.Play()
				clk.advance(5 * time.Second)
				_ = e.Suspend()
				clk.advance(time.Minute)
				_ = e.Resume()
				clk.advance(5 * time.Second)
			},
			wantMillis:  10000,
			wantPlaying: true,
		},
		{
			name: "Stops At End",
			steps: func(e *ClockEngine, clk *manualClock) {
				_ = e.Play()
				clk.advance(10 * time.Minute)
			},
			wantMillis:  120000,
			wantPlaying: false,
		},
		{
			name: "Seek While Playing",
			steps: func(e *ClockEngine, clk *manualClock) {
				_ = e.Play()
				clk.advance(time.Second)
				_ = e.SeekTo(60000)
				clk.advance(2 * time.Second)
			},
			wantMillis:  62000,
			wantPlaying: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clk := newTestEngine(2 * time.Minute)
			tt.steps(e, clk)

			pos, ok := e.Position()
			if !ok {
				t.Fatal("clock engine always knows its position")
			}
			if pos.CurrentTimeMillis != tt.wantMillis {
				t.Errorf("position: want %d, got %d", tt.wantMillis, pos.CurrentTimeMillis)
			}
			if pos.IsPlaying != tt.wantPlaying {
				t.Errorf("playing: want %v, got %v", tt.wantPlaying, pos.IsPlaying)
			}
			if pos.DurationMillis != 120000 {
				t.Errorf("duration: want 120000, got %d", pos.DurationMillis)
			}
		})
	}
}

func TestClockEngine_PlayAfterEndRestarts(t *testing.T) {
	e, clk := newTestEngine(time.Minute)
	_ = e.Play()
	clk.advance(2 * time.Minute)
	_, _ = e.Position()

	_ = e.Play()
	clk.advance(time.Second)

	pos, _ := e.Position()
	if pos.CurrentTimeMillis != 1000 {
		t.Errorf("expected replay from start, got %d", pos.CurrentTimeMillis)
	}
}

func TestClockEngine_SeekOutOfRange(t *testing.T) {
	e, _ := newTestEngine(time.Minute)

	if err := e.SeekTo(-1); err == nil {
		t.Error("expected error for negative seek")
	}
	if err := e.SeekTo(61000); err == nil {
		t.Error("expected error for seek past end")
	}
	if err := e.SeekTo(60000); err != nil {
		t.Errorf("seek to end should succeed: %v", err)
	}
}
