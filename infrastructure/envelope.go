package infrastructure

import (
	"encoding/json"
	"fmt"
	"time"

	"guildbot/domain/events"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const sourceService = "guildbot"

// Envelope is the decoded form of a published event
type Envelope struct {
	EventID       string
	EventType     events.EventType
	Timestamp     time.Time
	SourceService string
	Payload       map[string]any
}

// encodeEnvelope wraps an event in a protobuf Struct and renders it as JSON
func encodeEnvelope(event events.Event) ([]byte, string, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event payload: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, "", fmt.Errorf("failed to decode event payload: %w", err)
	}

	eventID := uuid.NewString()
	envelope, err := structpb.NewStruct(map[string]any{
		"event_id":       eventID,
		"event_type":     string(event.Type()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339Nano),
		"source_service": sourceService,
		"payload":        payload,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to build event envelope: %w", err)
	}

	data, err := protojson.Marshal(envelope)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	return data, eventID, nil
}

// DecodeEnvelope parses an envelope produced by the publisher
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var envelope structpb.Struct
	if err := protojson.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	fields := envelope.GetFields()
	decoded := &Envelope{
		EventID:       fields["event_id"].GetStringValue(),
		EventType:     events.EventType(fields["event_type"].GetStringValue()),
		SourceService: fields["source_service"].GetStringValue(),
		Payload:       fields["payload"].GetStructValue().AsMap(),
	}

	if ts := fields["timestamp"].GetStringValue(); ts != "" {
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("invalid envelope timestamp %q: %w", ts, err)
		}
		decoded.Timestamp = parsed
	}

	if decoded.EventID == "" || decoded.EventType == "" {
		return nil, fmt.Errorf("envelope missing event id or type")
	}
	return decoded, nil
}
