package bus

// EventBus is the in-process channel through which the simulation tells
// its collaborators what happened during a tick.
//
// Key characteristics:
// - Type-based fan-out: handlers subscribe by Event.Type(), or to every
//   type with the Any wildcard.
// - Synchronous delivery: Publish runs handlers on the caller's goroutine,
//   in subscription order.
// - Error aggregation: handler errors are joined and returned.
// - Optional observability: metrics are collected only while an observer
//   is registered.
//
// All methods are safe for concurrent use. Handlers must not block; the
// simulation publishes from inside its tick.
type EventBus interface {
	// Publish delivers the event to every active subscriber of its type
	// and to wildcard subscribers.
	Publish(event Event) error
	// PublishBatch publishes events in order and joins every error.
	PublishBatch(events ...Event) error
	// PublishWithFilters drops the event silently if any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error

	// Subscribe registers a handler for an event type, or for every type
	// when eventType is Any.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the subscription. Nil is ignored.
	Unsubscribe(Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics is a snapshot of the counters gathered while observed.
	GetMetrics() EventBusMetrics
}

// Any subscribes a handler to every event type.
const Any = "*"

// Event is an immutable notification.
//
// Fields:
// - Type: routing key, one of the simulation's event names.
// - Source: the subsystem that raised it.
// - At: simulation time in seconds.
// - Data: the typed payload.
type Event interface {
	Type() string
	Source() string
	At() float64
	Data() any
}

type (
	// EventHandler is invoked per delivered event.
	EventHandler func(event Event) error
	// EventFilter decides whether an event should be delivered.
	EventFilter func(event Event) bool
)

// Subscription is a handler bound to an event type.
type Subscription interface {
	// ID is a unique identifier for this subscription.
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Repeated calls are safe.
	Cancel() error
}

// EventBusObserver is told about every publish. Observers should return
// quickly.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, durationMicros int64)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
