package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/barmonse/teg-server/internal/broadcast"
	"github.com/barmonse/teg-server/internal/model"
)

const pingPeriod = 30 * time.Second

// EventsHandler streams broadcast events over SSE
type EventsHandler struct {
	broker broadcast.Broker
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(broker broadcast.Broker) *EventsHandler {
	return &EventsHandler{
		broker: broker,
	}
}

// StreamGlobal handles GET /api/v1/events
func (h *EventsHandler) StreamGlobal(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, broadcast.TopicSessionUpdates)
}

// StreamSession handles GET /api/v1/sessions/{id}/events
func (h *EventsHandler) StreamSession(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])
	h.stream(w, r, broadcast.SessionTopic(id))
}

// stream subscribes to a topic and forwards its events as SSE messages
// until the client disconnects
func (h *EventsHandler) stream(w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub, err := h.broker.Subscribe(topic)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer sub.Close()

	// SSE connections outlive the server-wide write timeout; clear the
	// per-request write deadline. Not supported by test recorders.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Send initial connection event
	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				// Broker shut down
				return
			}
			if _, err := w.Write(formatSSEEvent(event)); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// Send keepalive comment
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}

// formatSSEEvent renders an event as an SSE message, the event type as the
// SSE event name and the JSON envelope as its data
func formatSSEEvent(event model.Event) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	msg := "event: " + string(event.Type) + "\n"
	msg += "data: " + string(data) + "\n\n"
	return []byte(msg)
}
