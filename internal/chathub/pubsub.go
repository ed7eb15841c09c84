package chathub

import (
	"encoding/json"

	"duetchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// EventSubscriber is implemented by storage backends that expose a Redis
// pub/sub subscription. Test doubles that don't are simply skipped.
type EventSubscriber interface {
	SubscribeEvents() *redis.PubSub
}

// startPubSubListener runs a goroutine that relays chat events from Redis
// into the hub's dispatch loop.
func (m *ManagerService) startPubSubListener() {
	sub, ok := m.Storage.(EventSubscriber)
	if !ok {
		m.Logger.Warn("Storage has no event subscription; realtime fanout is local only")
		return
	}

	go func() {
		pubsub := sub.SubscribeEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var event models.ChatEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				m.Logger.WithError(err).Error("Failed to decode pub/sub chat event")
				continue
			}
			m.PubSubCh <- event
		}
	}()
}
