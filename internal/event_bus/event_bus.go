package event_bus

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event is the envelope passed to subscribers. Data holds one of the payloads from events.go.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{ctx: ctx, Type: eventType, Timestamp: time.Now(), Data: data}
}

// Context carries the publisher's request values, including the current user.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the envelope seen by typed subscribers.
type EventT[T any] struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      T
}

func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type subscriber struct {
	id uint64
	fn func(Event) error
}

// EventBus dispatches events synchronously, in subscription order, on the publisher's goroutine.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType]map[uint64]func(Event) error
	nextID      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[EventType]map[uint64]func(Event) error)}
}

// Subscribe registers fn for eventType and returns a function removing it again.
func (eb *EventBus) Subscribe(eventType EventType, fn func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	if eb.subscribers[eventType] == nil {
		eb.subscribers[eventType] = make(map[uint64]func(Event) error)
	}
	eb.subscribers[eventType][id] = fn

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		delete(eb.subscribers[eventType], id)
		if len(eb.subscribers[eventType]) == 0 {
			delete(eb.subscribers, eventType)
		}
	}
}

// SubscribeTyped registers fn for events whose Data is a T. Events carrying other payloads are skipped.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, fn func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("EventBus: skipping %s, expected %T payload, got %T", eventType, *new(T), e.Data)
			return nil
		}
		return fn(EventT[T]{ctx: e.ctx, Type: e.Type, Timestamp: e.Timestamp, Data: payload})
	})
}

// Publish runs every subscriber of e.Type. A failing or panicking subscriber does not stop the
// others; all failures are returned together. A cancelled context stops dispatch.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	subscribers := make([]subscriber, 0, len(eb.subscribers[e.Type]))
	for id, fn := range eb.subscribers[e.Type] {
		subscribers = append(subscribers, subscriber{id: id, fn: fn})
	}
	eb.mu.RUnlock()
	sort.Slice(subscribers, func(i, j int) bool { return subscribers[i].id < subscribers[j].id })

	var errs []error
	for _, s := range subscribers {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}
		if err := eb.dispatch(s, e); err != nil {
			log.Errorf("EventBus: subscriber %d failed on %s: %v", s.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d subscriber(s) failed: %v", e.Type, len(errs), errs)
	}
	return nil
}

func (eb *EventBus) dispatch(s subscriber, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber %d panicked on %s: %v", s.id, e.Type, r)
		}
	}()
	return s.fn(e)
}
