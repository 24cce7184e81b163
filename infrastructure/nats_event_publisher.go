package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/louisuxu-sys/BC-LINE/events"
	log "github.com/sirupsen/logrus"
)

// EventEnvelope wraps an event for the wire
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher forwards in-process bus events to NATS
type NATSEventPublisher struct {
	publisher MessagePublisher
	timeout   time.Duration
	now       func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(publisher MessagePublisher) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher: publisher,
		timeout:   5 * time.Second,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SubjectFor returns the NATS subject an event type is published on
func SubjectFor(eventType events.EventType) string {
	return EventSubjectPrefix + string(eventType)
}

// Attach subscribes the publisher to every event the bus emits
func (p *NATSEventPublisher) Attach(bus *events.Bus) {
	bus.SubscribeAll(p.handle)
}

func (p *NATSEventPublisher) handle(ctx context.Context, event events.Event) {
	if err := p.Forward(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"event_type": event.Type(),
			"error":      err,
		}).Error("Failed to forward event to NATS")
	}
}

// Forward wraps one event in an envelope and publishes it
func (p *NATSEventPublisher) Forward(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     string(event.Type()),
		Timestamp:     p.now(),
		SourceService: "bcline",
		Payload:       payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.publisher.Publish(ctx, SubjectFor(event.Type()), data); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"event_type": event.Type(),
		"event_id":   envelope.EventID,
	}).Debug("Forwarded event to NATS")
	return nil
}
