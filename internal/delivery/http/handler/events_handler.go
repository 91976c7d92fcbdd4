package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"medikeep/internal/delivery/http/middleware"
	"medikeep/internal/service"
	"medikeep/internal/usecase"
	"medikeep/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// EventsHandler streams hub events over server-sent events. Each connected
// client holds one subscription; the stream ends when the client disconnects
// or the server shuts down.
type EventsHandler struct {
	hub         *service.Hub
	chatUsecase usecase.ChatUsecase
	log         *logrus.Logger
}

func NewEventsHandler(hub *service.Hub, chatUsecase usecase.ChatUsecase, log *logrus.Logger) *EventsHandler {
	return &EventsHandler{
		hub:         hub,
		chatUsecase: chatUsecase,
		log:         log,
	}
}

// StreamUserEvents pushes friend requests, medication request updates and
// reminder firings for the authenticated user.
func (h *EventsHandler) StreamUserEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.stream(w, r, service.UserTopic(userID))
}

// StreamChatEvents pushes new messages in one chat. Membership is checked up
// front; the subscription itself carries no further authorization.
func (h *EventsHandler) StreamChatEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	chatID := mux.Vars(r)["id"]

	// Reuse the membership check from the message listing path.
	if _, err := h.chatUsecase.ListMessages(r.Context(), userID, chatID); err != nil {
		switch err {
		case usecase.ErrNotChatMember:
			response.Forbidden(w, "You are not a member of this chat")
		default:
			response.InternalServerError(w, "Failed to open event stream")
		}
		return
	}

	h.stream(w, r, service.ChatTopic(chatID))
}

func (h *EventsHandler) stream(w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	events, unsubscribe, err := h.hub.Subscribe(r.Context(), topic)
	if err != nil {
		response.InternalServerError(w, "Failed to open event stream")
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Payload)
			if err != nil {
				h.log.Warnf("Failed to marshal event payload: %+v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}
