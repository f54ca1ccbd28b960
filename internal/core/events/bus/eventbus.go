package bus

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// simpleEvent is the Event every simulation notification travels as.
type simpleEvent struct {
	typeStr string
	source  string
	at      float64
	data    any
}

func (e simpleEvent) Type() string   { return e.typeStr }
func (e simpleEvent) Source() string { return e.source }
func (e simpleEvent) At() float64    { return e.at }
func (e simpleEvent) Data() any      { return e.data }

// NewEvent creates an Event raised by src at simulation time at.
func NewEvent(typ, src string, at float64, data any) Event {
	return simpleEvent{typeStr: typ, source: src, at: at, data: data}
}

type subscription struct {
	id        string
	eventType string
	handler   EventHandler
	active    atomic.Bool
	cancel    func()
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) EventType() string { return s.eventType }
func (s *subscription) IsActive() bool    { return s.active.Load() }
func (s *subscription) Cancel() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// inMemoryBus keeps subscribers in slices so delivery order is the order
// of subscription.
type inMemoryBus struct {
	mu        sync.RWMutex
	handlers  map[string][]*subscription
	metrics   EventBusMetrics
	observers []EventBusObserver
}

var _ EventBus = (*inMemoryBus)(nil)

// New creates a new EventBus instance.
func New() EventBus {
	return &inMemoryBus{handlers: make(map[string][]*subscription)}
}

func (b *inMemoryBus) Publish(event Event) error {
	return b.deliver(event)
}

func (b *inMemoryBus) PublishWithFilters(event Event, filters ...EventFilter) error {
	for _, f := range filters {
		if !f(event) {
			b.mu.Lock()
			if len(b.observers) > 0 {
				b.metrics.DroppedByFilters++
			}
			b.mu.Unlock()
			return nil
		}
	}
	return b.Publish(event)
}

func (b *inMemoryBus) PublishBatch(events ...Event) error {
	var all error
	for _, e := range events {
		if err := b.Publish(e); err != nil {
			all = errors.Join(all, err)
		}
	}
	return all
}

func (b *inMemoryBus) Subscribe(eventType string, handler EventHandler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &subscription{id: uuid.NewString(), eventType: eventType, handler: handler}
	s.active.Store(true)
	s.cancel = func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		s.active.Store(false)
		b.handlers[eventType] = slices.DeleteFunc(b.handlers[eventType], func(o *subscription) bool {
			return o == s
		})
	}
	b.handlers[eventType] = append(b.handlers[eventType], s)
	return s, nil
}

func (b *inMemoryBus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

func (b *inMemoryBus) AddObserver(obs EventBusObserver) {
	b.mu.Lock()
	b.observers = append(b.observers, obs)
	b.mu.Unlock()
}

func (b *inMemoryBus) RemoveObserver(obs EventBusObserver) {
	b.mu.Lock()
	b.observers = slices.DeleteFunc(b.observers, func(o EventBusObserver) bool { return o == obs })
	b.mu.Unlock()
}

func (b *inMemoryBus) GetMetrics() EventBusMetrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}

func (b *inMemoryBus) deliver(event Event) error {
	start := time.Now()
	etype := event.Type()

	b.mu.RLock()
	subs := make([]*subscription, 0, len(b.handlers[etype])+len(b.handlers[Any]))
	subs = append(subs, b.handlers[etype]...)
	if etype != Any {
		subs = append(subs, b.handlers[Any]...)
	}
	observers := slices.Clone(b.observers)
	b.mu.RUnlock()

	for _, obs := range observers {
		obs.OnPublish(etype, event)
	}

	var all error
	delivered := 0
	for _, s := range subs {
		// cancelled since the snapshot was taken
		if !s.active.Load() {
			continue
		}
		delivered++
		if err := s.handler(event); err != nil {
			all = errors.Join(all, err)
		}
	}

	if len(observers) == 0 {
		return all
	}
	dur := time.Since(start).Microseconds()
	for _, obs := range observers {
		obs.OnDelivered(etype, delivered, all, dur)
	}

	b.mu.Lock()
	b.metrics.Published++
	b.metrics.DeliveredHandlers += uint64(delivered)
	if all != nil {
		b.metrics.Errors++
	}
	var active uint64
	for _, list := range b.handlers {
		active += uint64(len(list))
	}
	b.metrics.SubscribersActive = active
	b.mu.Unlock()
	return all
}
