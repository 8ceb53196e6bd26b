package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "EVALUATION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation embedded by concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeEvaluationCompleted = "EVALUATION_COMPLETED"
	TypeChatTurnCompleted   = "CHAT_TURN_COMPLETED"
)

// NewEvaluationCompletedEvent records one finished evaluation request.
func NewEvaluationCompletedEvent(agentUsed string, score float64, contentLength int) Event {
	return BaseEvent{
		Type: TypeEvaluationCompleted,
		Data: map[string]interface{}{
			"agent_used":     agentUsed,
			"score":          score,
			"content_length": contentLength,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatTurnCompletedEvent records one fully drained generation turn.
func NewChatTurnCompletedEvent(sessionID, backend string, responseChars int) Event {
	return BaseEvent{
		Type: TypeChatTurnCompleted,
		Data: map[string]interface{}{
			"session_id":     sessionID,
			"backend":        backend,
			"response_chars": responseChars,
		},
		OccurredAt: time.Now(),
	}
}
