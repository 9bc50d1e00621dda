package events

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/genricoloni/castshell/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Handler receives a published session event.
// A returned error (or a panic) is reported to the channel's error sink.
// Handlers run on the publisher's goroutine and must not call back into the
// publisher synchronously.
type Handler func(event domain.SessionEvent) error

// Subscription is the handle returned by Subscribe
type Subscription struct {
	id      uuid.UUID
	types   map[domain.EventType]struct{}
	handler Handler
	active  atomic.Bool
}

// ID returns the unique identifier of the subscription
func (s *Subscription) ID() string {
	return s.id.String()
}

// Active reports whether the subscription still receives events
func (s *Subscription) Active() bool {
	return s != nil && s.active.Load()
}

func (s *Subscription) wants(t domain.EventType) bool {
	_, ok := s.types[t]
	return ok
}

// Channel is an in-process publish/subscribe dispatcher for session events.
// Delivery is synchronous and follows registration order.
type Channel struct {
	logger *zap.Logger // error sink for subscriber faults
	mu     sync.RWMutex
	subs   []*Subscription
}

// NewChannel creates an empty event channel
func NewChannel(logger *zap.Logger) *Channel {
	return &Channel{logger: logger}
}

// Subscribe registers handler for the given event types.
// An empty type set is accepted; such a handler never fires.
func (c *Channel) Subscribe(types []domain.EventType, handler Handler) *Subscription {
	sub := &Subscription{
		id:      uuid.New(),
		types:   make(map[domain.EventType]struct{}, len(types)),
		handler: handler,
	}
	for _, t := range types {
		sub.types[t] = struct{}{}
	}
	sub.active.Store(true)

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	c.logger.Debug("Subscriber registered",
		zap.String("subscription", sub.ID()),
		zap.Int("types", len(types)))
	return sub
}

// Unsubscribe removes sub. Unknown, nil or already removed handles are ignored.
// It is safe to call from inside the subscriber's own handler.
func (c *Channel) Unsubscribe(sub *Subscription) {
	if sub == nil || !sub.active.CompareAndSwap(true, false) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s == sub {
			// copy so that snapshots taken by in-flight publishes stay intact
			next := make([]*Subscription, 0, len(c.subs)-1)
			next = append(next, c.subs[:i]...)
			c.subs = append(next, c.subs[i+1:]...)
			break
		}
	}

	c.logger.Debug("Subscriber removed", zap.String("subscription", sub.ID()))
}

// Publish delivers event to every active subscriber of its type, in
// registration order. Faults never reach the publisher.
func (c *Channel) Publish(event domain.SessionEvent) {
	c.mu.RLock()
	snapshot := c.subs
	c.mu.RUnlock()

	var faults error
	delivered := 0
	for _, sub := range snapshot {
		if !sub.wants(event.Type) || !sub.active.Load() {
			continue
		}
		delivered++
		if err := deliver(sub, event); err != nil {
			faults = multierr.Append(faults, fmt.Errorf("subscriber %s: %w", sub.ID(), err))
		}
	}

	if faults != nil {
		c.logger.Error("Subscriber faults during event delivery",
			zap.String("event", string(event.Type)),
			zap.Errors("faults", multierr.Errors(faults)))
	}

	c.logger.Debug("Event published",
		zap.String("event", string(event.Type)),
		zap.Int("delivered", delivered))
}

// Len returns the number of registered subscriptions
func (c *Channel) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}

func deliver(sub *Subscription, event domain.SessionEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return sub.handler(event)
}
