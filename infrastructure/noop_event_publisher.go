package infrastructure

import "guildbot/domain/events"

// NoopEventPublisher drops every event. Worker tests use it when only the
// database effects matter.
type NoopEventPublisher struct{}

func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{}
}

func (NoopEventPublisher) Publish(events.Event) error {
	return nil
}
