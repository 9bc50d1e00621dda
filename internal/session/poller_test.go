package session

import (
	"context"
	"testing"
	"time"

	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
)

func TestPoller_Poll(t *testing.T) {
	tests := []struct {
		name      string
		scrubbing bool
		wantSink  bool
	}{
		{"Delivers Position", false, true},
		{"Suppressed While Scrubbing", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, local, _, _ := newTestSession(t)
			pos := domain.PlaybackPosition{CurrentTimeMillis: 30000, DurationMillis: 120000, IsPlaying: true}
			if tt.wantSink {
				local.EXPECT().Position().Return(pos, true)
			}
			if tt.scrubbing {
				s.ScrubStarted()
			}

			var got []domain.PlaybackPosition
			p := NewPoller(zap.NewNop(), s, time.Second, func(p domain.PlaybackPosition) {
				got = append(got, p)
			})

			if delivered := p.Poll(); delivered != tt.wantSink {
				t.Errorf("Poll() = %v, want %v", delivered, tt.wantSink)
			}
			if tt.wantSink && (len(got) != 1 || got[0] != pos) {
				t.Errorf("unexpected sink input: %+v", got)
			}
			if !tt.wantSink && len(got) != 0 {
				t.Errorf("sink should not be called, got %+v", got)
			}
		})
	}
}

func TestPoller_StartStop(t *testing.T) {
	s, local, _, _ := newTestSession(t)
	local.EXPECT().Position().Return(domain.PlaybackPosition{DurationMillis: 1000}, true).MinTimes(1)

	ticks := make(chan domain.PlaybackPosition, 16)
	p := NewPoller(zap.NewNop(), s, 5*time.Millisecond, func(pos domain.PlaybackPosition) {
		select {
		case ticks <- pos:
		default:
		}
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("Timeout: poller never delivered a position")
	}

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}
