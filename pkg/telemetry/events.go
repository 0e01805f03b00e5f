package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is an audit event emitted after a booking changes.
type Event struct {
	// ID is the unique identifier for this event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type is the event type.
	Type string `json:"type"`

	// Source identifies where the event originated.
	Source string `json:"source"`

	// BookingID is the affected booking, zero for table-wide events.
	BookingID int64 `json:"booking_id,omitempty"`

	// Message is a human-readable event message.
	Message string `json:"message"`

	// Level is the event severity level (info, warning, error).
	Level string `json:"level"`

	// Data contains additional event-specific data.
	Data map[string]interface{} `json:"data,omitempty"`
}

// Event types.
const (
	EventTypeBookingCreated   = "booking.created"
	EventTypeBookingUpdated   = "booking.updated"
	EventTypeBookingDeleted   = "booking.deleted"
	EventTypeBookingsPurged   = "booking.purged"
	EventTypeDaycareDatesSet  = "booking.daycare_set"
	EventTypeStoreUnavailable = "store.unavailable"
)

// Event levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

const eventSource = "booking_store"

// EventSubscriber is a function that handles events.
type EventSubscriber func(event Event)

// EventFilter determines if an event should be processed.
type EventFilter func(event Event) bool

// EventPublisher manages event publishing and subscriptions. Subscribers are
// called one at a time, in publish order.
type EventPublisher struct {
	config      EventsConfig
	buffer      chan Event
	subscribers []subscriberEntry
	filters     []EventFilter
	wg          sync.WaitGroup
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	stopOnce    sync.Once

	// sendMu orders async sends against Shutdown: once stopped is set no
	// event can enter the buffer, so the drain in processEvents sees all.
	sendMu  sync.Mutex
	stopped bool
}

type subscriberEntry struct {
	subscriber EventSubscriber
	filter     EventFilter
}

// NewEventPublisher creates a new event publisher with the given configuration.
func NewEventPublisher(cfg EventsConfig) (*EventPublisher, error) {
	if !cfg.Enabled {
		return &EventPublisher{config: cfg}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	ep := &EventPublisher{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	if cfg.EnableAsync {
		ep.buffer = make(chan Event, cfg.BufferSize)
		ep.wg.Add(1)
		go ep.processEvents()
	}

	return ep, nil
}

// Publish publishes an event to all subscribers.
func (ep *EventPublisher) Publish(event Event) error {
	if !ep.config.Enabled {
		return nil
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Source == "" {
		event.Source = eventSource
	}

	ep.mu.RLock()
	for _, filter := range ep.filters {
		if !filter(event) {
			ep.mu.RUnlock()
			return nil
		}
	}
	ep.mu.RUnlock()

	if ep.config.EnableAsync {
		ep.sendMu.Lock()
		defer ep.sendMu.Unlock()

		if ep.stopped {
			return fmt.Errorf("event publisher stopped")
		}

		select {
		case ep.buffer <- event:
			return nil
		default:
			return fmt.Errorf("event buffer full, event dropped")
		}
	}

	ep.deliverEvent(event)
	return nil
}

// PublishBookingCreated publishes a booking created event.
func (ep *EventPublisher) PublishBookingCreated(id int64, client, date string) error {
	return ep.Publish(Event{
		Type:      EventTypeBookingCreated,
		BookingID: id,
		Message:   fmt.Sprintf("Booking %d created for %s on %s", id, client, date),
		Level:     EventLevelInfo,
		Data: map[string]interface{}{
			"client": client,
			"date":   date,
		},
	})
}

// PublishBookingUpdated publishes a booking updated event.
func (ep *EventPublisher) PublishBookingUpdated(id int64, client, date string) error {
	return ep.Publish(Event{
		Type:      EventTypeBookingUpdated,
		BookingID: id,
		Message:   fmt.Sprintf("Booking %d updated", id),
		Level:     EventLevelInfo,
		Data: map[string]interface{}{
			"client": client,
			"date":   date,
		},
	})
}

// PublishBookingDeleted publishes a booking deleted event.
func (ep *EventPublisher) PublishBookingDeleted(id int64) error {
	return ep.Publish(Event{
		Type:      EventTypeBookingDeleted,
		BookingID: id,
		Message:   fmt.Sprintf("Booking %d deleted", id),
		Level:     EventLevelWarning,
	})
}

// PublishBookingsPurged publishes an event for a delete-all.
func (ep *EventPublisher) PublishBookingsPurged(count int64) error {
	return ep.Publish(Event{
		Type:    EventTypeBookingsPurged,
		Message: fmt.Sprintf("All bookings deleted (%d rows)", count),
		Level:   EventLevelWarning,
		Data: map[string]interface{}{
			"rows": count,
		},
	})
}

// PublishDaycareDatesSet publishes an event for a daycare date change.
func (ep *EventPublisher) PublishDaycareDatesSet(id int64, dates []string) error {
	return ep.Publish(Event{
		Type:      EventTypeDaycareDatesSet,
		BookingID: id,
		Message:   fmt.Sprintf("Daycare dates for booking %d set to [%s]", id, strings.Join(dates, ", ")),
		Level:     EventLevelInfo,
		Data: map[string]interface{}{
			"dates": dates,
		},
	})
}

// PublishStoreUnavailable publishes an event when the store cannot be used.
func (ep *EventPublisher) PublishStoreUnavailable(reason string) error {
	return ep.Publish(Event{
		Type:    EventTypeStoreUnavailable,
		Message: fmt.Sprintf("Booking store unavailable: %s", reason),
		Level:   EventLevelError,
		Data: map[string]interface{}{
			"reason": reason,
		},
	})
}

// Subscribe adds a new event subscriber. filter may be nil.
func (ep *EventPublisher) Subscribe(subscriber EventSubscriber, filter EventFilter) {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	ep.subscribers = append(ep.subscribers, subscriberEntry{
		subscriber: subscriber,
		filter:     filter,
	})
}

// AddFilter adds a global event filter.
func (ep *EventPublisher) AddFilter(filter EventFilter) {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	ep.filters = append(ep.filters, filter)
}

// processEvents delivers buffered events until shutdown, then drains what is left.
func (ep *EventPublisher) processEvents() {
	defer ep.wg.Done()

	for {
		select {
		case event := <-ep.buffer:
			ep.deliverEvent(event)
		case <-ep.ctx.Done():
			for {
				select {
				case event := <-ep.buffer:
					ep.deliverEvent(event)
				default:
					return
				}
			}
		}
	}
}

// deliverEvent delivers an event to all matching subscribers.
func (ep *EventPublisher) deliverEvent(event Event) {
	ep.mu.RLock()
	defer ep.mu.RUnlock()

	for _, entry := range ep.subscribers {
		if entry.filter != nil && !entry.filter(event) {
			continue
		}
		entry.subscriber(event)
	}
}

// Shutdown stops the publisher after delivering buffered events.
func (ep *EventPublisher) Shutdown(ctx context.Context) error {
	if !ep.config.Enabled {
		return nil
	}

	ep.stopOnce.Do(func() {
		ep.sendMu.Lock()
		ep.stopped = true
		ep.sendMu.Unlock()
		ep.cancel()
	})

	done := make(chan struct{})
	go func() {
		ep.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event publisher shutdown timeout")
	}
}

// Common event filters.

// FilterByLevel creates a filter that only allows events of a specific level or higher.
func FilterByLevel(minLevel string) EventFilter {
	levels := map[string]int{
		EventLevelInfo:    0,
		EventLevelWarning: 1,
		EventLevelError:   2,
	}

	minLevelValue := levels[minLevel]

	return func(event Event) bool {
		return levels[event.Level] >= minLevelValue
	}
}

// FilterByType creates a filter that only allows events of specific types.
func FilterByType(types ...string) EventFilter {
	typeSet := make(map[string]bool)
	for _, t := range types {
		typeSet[t] = true
	}

	return func(event Event) bool {
		return typeSet[event.Type]
	}
}

// FilterByBookingID creates a filter that only allows events for one booking.
func FilterByBookingID(id int64) EventFilter {
	return func(event Event) bool {
		return event.BookingID == id
	}
}
