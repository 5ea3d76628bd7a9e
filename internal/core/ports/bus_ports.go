package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const (
	// TopicQuestions is the global topic carrying new-question events.
	TopicQuestions = "questions"

	EventQuestionCreated = "question-created"
	EventResponseCreated = "response-created"
)

// ResponseTopic is the per-question topic carrying new-response events.
func ResponseTopic(questionID uuid.UUID) string {
	return "questions:" + questionID.String() + ":responses"
}

type Event struct {
	Topic   string
	Name    string
	Payload json.RawMessage
}

type EventPublisher interface {
	// Publish is best-effort. Callers must not fail their originating
	// write when it errors; the dashboard self-heals via refetch.
	Publish(ctx context.Context, topic, name string, payload any) error
}

type EventBus interface {
	EventPublisher
	// Subscribe delivers events published to topic after the call, in
	// publish order, until ctx is done or the returned cancel func runs.
	// There is no replay: subscribers catch up via a full-state fetch.
	Subscribe(ctx context.Context, topic string) (<-chan Event, func(), error)
}
