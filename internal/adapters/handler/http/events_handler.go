package http

import (
	"fmt"
	"net/http"

	"github.com/classpulse/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EventsHandler struct {
	bus ports.EventBus
}

func NewEventsHandler(bus ports.EventBus) *EventsHandler {
	return &EventsHandler{
		bus: bus,
	}
}

// QuestionEvents streams new-question events from the global topic.
func (h *EventsHandler) QuestionEvents(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, ports.TopicQuestions)
}

// ResponseEvents streams new-response events for one question.
func (h *EventsHandler) ResponseEvents(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}
	h.stream(w, r, ports.ResponseTopic(questionID))
}

func (h *EventsHandler) stream(w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel, err := h.bus.Subscribe(r.Context(), topic)
	if err != nil {
		http.Error(w, "failed to subscribe", http.StatusServiceUnavailable)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, event.Payload)
			flusher.Flush()
		}
	}
}
