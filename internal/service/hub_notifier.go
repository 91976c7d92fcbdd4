package service

import (
	"context"

	"github.com/google/uuid"
)

// HubNotifier delivers reminder firings over the realtime hub, onto the
// user's personal topic.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Notify(userID uuid.UUID, notification ReminderNotification) {
	n.hub.Publish(context.Background(), UserTopic(userID), Event{
		Type:    EventReminder,
		Payload: notification,
	})
}
