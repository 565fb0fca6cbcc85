package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType names a round event
type EventType string

const (
	EventTypeRoundStarted  EventType = "RoundStarted"
	EventTypeTargetHit     EventType = "TargetHit"
	EventTypeClickRejected EventType = "ClickRejected"
	EventTypeRoundFinished EventType = "RoundFinished"
)

// Envelope wraps an event payload with its identity and round
type Envelope struct {
	EventID   uuid.UUID       `json:"eventId"`
	EventType EventType       `json:"eventType"`
	RoundID   uuid.UUID       `json:"roundId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload and wraps it in an envelope with a fresh event ID
func NewEnvelope(eventType EventType, roundID uuid.UUID, at time.Time, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:   uuid.New(),
		EventType: eventType,
		RoundID:   roundID,
		Timestamp: at,
		Payload:   data,
	}, nil
}

// ParsePayload decodes the envelope payload into its typed struct
func ParsePayload(env Envelope) (interface{}, error) {
	switch env.EventType {
	case EventTypeRoundStarted:
		var payload RoundStartedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal RoundStarted payload: %w", err)
		}
		return payload, nil

	case EventTypeTargetHit:
		var payload TargetHitPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TargetHit payload: %w", err)
		}
		return payload, nil

	case EventTypeClickRejected:
		var payload ClickRejectedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ClickRejected payload: %w", err)
		}
		return payload, nil

	case EventTypeRoundFinished:
		var payload RoundFinishedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal RoundFinished payload: %w", err)
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("unknown event type %q", env.EventType)
	}
}
