package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/genricoloni/castshell/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	allTypes = []domain.EventType{domain.RendererSelectedEvent, domain.RendererClearedEvent}
	tv       = domain.RendererDescriptor{ID: "org.mpris.MediaPlayer2.vlc", Name: "VLC"}
)

func TestPublish_RegistrationOrder(t *testing.T) {
	ch := NewChannel(zap.NewNop())

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		ch.Subscribe(allTypes, func(domain.SessionEvent) error {
			order = append(order, name)
			return nil
		})
	}

	ch.Publish(domain.RendererCleared())

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("expected %d deliveries, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("delivery %d: want %s, got %s", i, want[i], order[i])
		}
	}
}

func TestPublish_TypeFiltering(t *testing.T) {
	tests := []struct {
		name      string
		types     []domain.EventType
		event     domain.SessionEvent
		wantCalls int
	}{
		{
			name:      "Matching Type",
			types:     []domain.EventType{domain.RendererSelectedEvent},
			event:     domain.RendererSelected(tv),
			wantCalls: 1,
		},
		{
			name:      "Other Type Ignored",
			types:     []domain.EventType{domain.RendererSelectedEvent},
			event:     domain.RendererCleared(),
			wantCalls: 0,
		},
		{
			name:      "Empty Type Set Never Fires",
			types:     nil,
			event:     domain.RendererCleared(),
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := NewChannel(zap.NewNop())
			calls := 0
			ch.Subscribe(tt.types, func(domain.SessionEvent) error {
				calls++
				return nil
			})

			ch.Publish(tt.event)

			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
		})
	}
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	ch := NewChannel(zap.NewNop())
	calls := 0
	sub := ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		calls++
		return nil
	})

	ch.Unsubscribe(sub)
	ch.Unsubscribe(sub)
	ch.Unsubscribe(nil)
	ch.Unsubscribe(&Subscription{})

	ch.Publish(domain.RendererCleared())

	if calls != 0 {
		t.Errorf("unsubscribed handler was called %d times", calls)
	}
	if sub.Active() {
		t.Error("subscription should be inactive")
	}
	if ch.Len() != 0 {
		t.Errorf("expected no subscribers, got %d", ch.Len())
	}
}

// TestPublish_FaultIsolation verifies that failing handlers neither stop
// delivery nor reach the publisher, and that faults land in the error sink.
func TestPublish_FaultIsolation(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	ch := NewChannel(zap.New(core))

	reached := 0
	ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		return errors.New("detached view")
	})
	ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		panic("nil view")
	})
	ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		reached++
		return nil
	})

	ch.Publish(domain.RendererSelected(tv))

	if reached != 1 {
		t.Fatalf("healthy subscriber should run once, ran %d times", reached)
	}

	entries := logs.FilterMessage("Subscriber faults during event delivery").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error sink entry, got %d", len(entries))
	}
	faults, ok := entries[0].ContextMap()["faults"].([]interface{})
	if !ok {
		t.Fatalf("faults field missing or wrong type: %#v", entries[0].ContextMap()["faults"])
	}
	if len(faults) != 2 {
		t.Errorf("expected 2 faults, got %d", len(faults))
	}
}

func TestPublish_SelectedTwiceKeepsOrder(t *testing.T) {
	ch := NewChannel(zap.NewNop())
	d1 := domain.RendererDescriptor{ID: "a", Name: "Living Room"}
	d2 := domain.RendererDescriptor{ID: "b", Name: "Bedroom"}

	var got []domain.SessionEvent
	ch.Subscribe(allTypes, func(e domain.SessionEvent) error {
		got = append(got, e)
		return nil
	})

	ch.Publish(domain.RendererSelected(d1))
	ch.Publish(domain.RendererSelected(d2))

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Renderer != d1 || got[1].Renderer != d2 {
		t.Errorf("payload order mismatch: %+v", got)
	}
	for _, e := range got {
		if e.Type != domain.RendererSelectedEvent {
			t.Errorf("unexpected event type %s", e.Type)
		}
	}
}

func TestUnsubscribe_FromOwnHandler(t *testing.T) {
	ch := NewChannel(zap.NewNop())

	var self *Subscription
	calls := 0
	self = ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		calls++
		ch.Unsubscribe(self)
		return nil
	})
	after := 0
	ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		after++
		return nil
	})

	ch.Publish(domain.RendererCleared())
	ch.Publish(domain.RendererCleared())

	if calls != 1 {
		t.Errorf("self-unsubscribing handler should run once, ran %d times", calls)
	}
	if after != 2 {
		t.Errorf("later subscriber should see both events, saw %d", after)
	}
}

func TestUnsubscribe_LaterSubscriberDuringPublish(t *testing.T) {
	ch := NewChannel(zap.NewNop())

	var victim *Subscription
	ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		ch.Unsubscribe(victim)
		return nil
	})
	victimCalls := 0
	victim = ch.Subscribe(allTypes, func(domain.SessionEvent) error {
		victimCalls++
		return nil
	})

	ch.Publish(domain.RendererCleared())

	if victimCalls != 0 {
		t.Errorf("handler unsubscribed before its turn should not run, ran %d times", victimCalls)
	}
}

// TestChannel_ConcurrentUse is meant to be run with -race.
func TestChannel_ConcurrentUse(t *testing.T) {
	ch := NewChannel(zap.NewNop())
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sub := ch.Subscribe(allTypes, func(domain.SessionEvent) error { return nil })
				ch.Unsubscribe(sub)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ch.Publish(domain.RendererSelected(tv))
			}
		}()
	}
	wg.Wait()

	if ch.Len() != 0 {
		t.Errorf("expected all subscriptions removed, got %d", ch.Len())
	}
}
