package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Event is the unit of delivery on the realtime hub. Views subscribe to a
// topic and receive the latest matching records as they change; the transport
// is Redis pub/sub fanned out over SSE.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Event types published by the usecases.
const (
	EventChatMessage       = "chat.message"
	EventFriendRequest     = "friend.request"
	EventFriendResponse    = "friend.response"
	EventMedicationRequest = "medication.request"
	EventRequestFulfilled  = "medication.request.fulfilled"
	EventReminder          = "reminder.due"
)

const channelPrefix = "medikeep:events:"

// UserTopic is the per-user event stream (requests, reminders, responses).
func UserTopic(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// ChatTopic is the per-chat message stream.
func ChatTopic(chatID string) string {
	return "chat:" + chatID
}

// Hub is a Redis pub/sub backed event broker. Publish is fire-and-forget from
// the caller's perspective: delivery failures are logged, never retried.
type Hub struct {
	redisClient *redis.Client
	log         *logrus.Logger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

func NewHub(redisClient *redis.Client, log *logrus.Logger) *Hub {
	return &Hub{
		redisClient: redisClient,
		log:         log,
	}
}

// Publish sends an event to every subscriber of the topic.
func (h *Hub) Publish(ctx context.Context, topic string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Warnf("Failed to marshal event for topic %s: %+v", topic, err)
		return
	}
	if err := h.redisClient.Publish(ctx, channelPrefix+topic, data).Err(); err != nil {
		h.log.Warnf("Failed to publish event to topic %s: %+v", topic, err)
	}
}

// Subscribe registers for a topic. It returns a buffered event channel and an
// unsubscribe function; the channel is closed after unsubscribe or context
// cancellation. Slow consumers drop events rather than block the hub.
func (h *Hub) Subscribe(ctx context.Context, topic string) (<-chan Event, func(), error) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil, nil, fmt.Errorf("hub is stopped")
	}
	h.wg.Add(1)
	h.mu.Unlock()

	pubsub := h.redisClient.Subscribe(ctx, channelPrefix+topic)
	events := make(chan Event, 16)

	go func() {
		defer h.wg.Done()
		defer close(events)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.log.Warnf("Failed to decode event on topic %s: %+v", topic, err)
				continue
			}
			select {
			case events <- event:
			default:
				h.log.Debugf("Dropping event for slow subscriber on topic %s", topic)
			}
		}
	}()

	unsubscribe := func() {
		// Closing the pubsub closes its channel, which ends the goroutine.
		if err := pubsub.Close(); err != nil {
			h.log.Debugf("Failed to close subscription for topic %s: %+v", topic, err)
		}
	}

	return events, unsubscribe, nil
}

// Stop waits for all subscriber goroutines to finish. Callers must have
// unsubscribed first; Stop does not force-close active subscriptions.
func (h *Hub) Stop() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()
	h.wg.Wait()
	h.log.Info("Realtime hub stopped")
}
