package events

import (
	"context"
	"sync"
	"time"

	"github.com/louisuxu-sys/BC-LINE/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeOutcomesRecorded EventType = "outcomes_recorded"
	EventTypePredictionMade   EventType = "prediction_made"
	EventTypeRoomCleared      EventType = "room_cleared"
	EventTypeBetSettled       EventType = "bet_settled"
	EventTypeCodeRedeemed     EventType = "code_redeemed"
	EventTypeCodesGenerated   EventType = "codes_generated"
)

// AllEventTypes lists every event type the bus can carry
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeOutcomesRecorded,
		EventTypePredictionMade,
		EventTypeRoomCleared,
		EventTypeBetSettled,
		EventTypeCodeRedeemed,
		EventTypeCodesGenerated,
	}
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// OutcomesRecordedEvent is emitted after new outcomes are appended to a room
type OutcomesRecordedEvent struct {
	UserID        string           `json:"user_id"`
	Room          string           `json:"room"`
	Outcomes      []models.Outcome `json:"outcomes"`
	HistoryLength int              `json:"history_length"`
}

func (e OutcomesRecordedEvent) Type() EventType {
	return EventTypeOutcomesRecorded
}

// PredictionMadeEvent is emitted whenever the engine produces a result for a room
type PredictionMadeEvent struct {
	UserID     string            `json:"user_id"`
	Room       string            `json:"room"`
	Suggestion models.Suggestion `json:"suggestion"`
	Confidence int               `json:"confidence"`
	Mode       models.Mode       `json:"mode"`
}

func (e PredictionMadeEvent) Type() EventType {
	return EventTypePredictionMade
}

// RoomClearedEvent is emitted when a room, or all rooms of a user when Room is empty, are reset
type RoomClearedEvent struct {
	UserID string `json:"user_id"`
	Room   string `json:"room,omitempty"`
}

func (e RoomClearedEvent) Type() EventType {
	return EventTypeRoomCleared
}

// BetSettledEvent reports the simulated result of following a suggestion
type BetSettledEvent struct {
	UserID  string         `json:"user_id"`
	Room    string         `json:"room"`
	Side    models.Outcome `json:"side"`
	Outcome models.Outcome `json:"outcome"`
	Units   string         `json:"units"`
	Balance string         `json:"balance"`
}

func (e BetSettledEvent) Type() EventType {
	return EventTypeBetSettled
}

// CodeRedeemedEvent is emitted after a redemption code extends an entitlement
type CodeRedeemedEvent struct {
	UserID    string              `json:"user_id"`
	Code      string              `json:"code"`
	Duration  models.CodeDuration `json:"duration"`
	ExpiresAt time.Time           `json:"expires_at"`
}

func (e CodeRedeemedEvent) Type() EventType {
	return EventTypeCodeRedeemed
}

// CodesGeneratedEvent is emitted after an admin issues a batch of codes
type CodesGeneratedEvent struct {
	AdminID  string              `json:"admin_id"`
	BatchID  string              `json:"batch_id"`
	Duration models.CodeDuration `json:"duration"`
	Count    int                 `json:"count"`
}

func (e CodesGeneratedEvent) Type() EventType {
	return EventTypeCodesGenerated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"event_type":    eventType,
		"handler_count": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds the handler to every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes() {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers. Handlers run asynchronously.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"event_type":    event.Type(),
		"handler_count": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"event_type":    event.Type(),
						"handler_index": handlerIndex,
						"panic":         r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// Publish emits immediately. It lets the bus stand in for a publisher outside a unit of work.
func (b *Bus) Publish(event Event) {
	b.Emit(context.Background(), event)
}

// TransactionalBus holds events raised inside a unit of work until the transaction commits
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"event_type":    e.Type(),
		"pending_count": len(b.pending),
	}).Debug("Queued event on transactional bus")
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// handlers outlive the transaction context
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	log.WithField("event_count", len(b.pending)).Debug("Flushed transactional bus")
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of queued events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
