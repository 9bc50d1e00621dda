package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoop_RunsInPostOrder(t *testing.T) {
	l := NewLoop(zap.NewNop())
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer l.Stop(context.Background())

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	for i := 0; i < 50; i++ {
		i := i
		l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	l.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Timeout: posted work did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
}

func TestLoop_PostLatestCoalesces(t *testing.T) {
	l := NewLoop(zap.NewNop())

	var got []string
	l.PostLatest("position", func() { got = append(got, "pos-1") })
	l.Post(func() { got = append(got, "glyph") })
	l.PostLatest("position", func() { got = append(got, "pos-2") })
	l.PostLatest("position", func() { got = append(got, "pos-3") })
	l.PostLatest("other", func() { got = append(got, "other") })

	// drive the loop body directly so the batch boundary is deterministic
	l.drain()

	want := []string{"glyph", "pos-3", "other"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestLoop_PanicDoesNotStopLoop(t *testing.T) {
	l := NewLoop(zap.NewNop())

	ran := false
	l.Post(func() { panic("view gone") })
	l.Post(func() { ran = true })
	l.drain()

	if !ran {
		t.Error("task after a panicking task should still run")
	}
}

func TestLoop_StartStopIdempotent(t *testing.T) {
	l := NewLoop(zap.NewNop())
	ctx := context.Background()

	if err := l.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := l.Start(ctx); err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if err := l.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := l.Stop(ctx); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}

func TestImmediate_RunsInline(t *testing.T) {
	var d Immediate
	n := 0
	d.Post(func() { n++ })
	d.PostLatest("k", func() { n++ })
	if n != 2 {
		t.Errorf("expected 2 inline runs, got %d", n)
	}
}
