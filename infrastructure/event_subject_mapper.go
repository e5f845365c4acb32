package infrastructure

import (
	"fmt"

	"guildbot/domain/events"
)

// DomainEventStream is the JetStream stream holding every published event
const DomainEventStream = "guildbot_events"

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

var subjectsByType = map[events.EventType]string{
	events.EventTypeBalanceChange: "guildbot.economy.balance_changed",
	events.EventTypeHeistResolved: "guildbot.economy.heist_resolved",
	events.EventTypeLevelUp:       "guildbot.leveling.level_up",
	events.EventTypeWarningIssued: "guildbot.moderation.warning_issued",
}

// MapEventToSubject converts a domain event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := subjectsByType[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("guildbot.unknown.%s", event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	for eventType, s := range subjectsByType {
		if s == subject {
			return eventType
		}
	}
	return events.EventType(subject)
}

// GetAllSubjects returns every subject this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"guildbot.economy.balance_changed",
		"guildbot.economy.heist_resolved",
		"guildbot.leveling.level_up",
		"guildbot.moderation.warning_issued",
	}
}
