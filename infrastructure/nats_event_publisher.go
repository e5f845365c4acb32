package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"guildbot/domain/events"
	"guildbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// NATSEventPublisher dispatches events to in-process handlers and, when a
// client is configured, publishes them to JetStream
type NATSEventPublisher struct {
	natsClient    *NATSClient
	subjectMapper *EventSubjectMapper
	bus           *events.Bus
}

// NewNATSEventPublisher creates a publisher. natsClient may be nil to keep events in process.
func NewNATSEventPublisher(natsClient *NATSClient, subjectMapper *EventSubjectMapper, bus *events.Bus) *NATSEventPublisher {
	return &NATSEventPublisher{
		natsClient:    natsClient,
		subjectMapper: subjectMapper,
		bus:           bus,
	}
}

// Publish emits the event locally and forwards it to NATS
func (p *NATSEventPublisher) Publish(event events.Event) error {
	ctx := context.Background()

	p.bus.Emit(ctx, event)

	if p.natsClient == nil {
		return nil
	}

	subject := p.subjectMapper.MapEventToSubject(event)
	data, eventID, err := encodeEnvelope(event)
	if err != nil {
		return err
	}

	if err := p.natsClient.Publish(ctx, subject, data); err != nil {
		// no stream bound to the subject yet
		if strings.Contains(err.Error(), "no response from stream") {
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	if metrics := observability.GetMetrics(); metrics != nil {
		metrics.RecordNATSMessagePublished(string(event.Type()))
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   eventID,
		"subject":   subject,
	}).Debug("Published event to NATS")

	return nil
}

// RegisterLocalHandler registers a handler invoked in this process for eventType
func (p *NATSEventPublisher) RegisterLocalHandler(eventType events.EventType, handler events.Handler) {
	p.bus.Subscribe(eventType, handler)
	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": p.bus.HandlerCount(eventType),
	}).Info("Registered local event handler")
}

// EnsureDomainEventStream creates the JetStream stream for every published subject
func (p *NATSEventPublisher) EnsureDomainEventStream() error {
	if p.natsClient == nil {
		return nil
	}
	return p.natsClient.EnsureStream(DomainEventStream, p.subjectMapper.GetAllSubjects())
}
