package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// MessageEvent is the change notification published when a message row is
// inserted. It carries the ids needed for an incremental client-side merge,
// but consumers may treat it as a bare refresh trigger: delivery is
// at-least-once and duplicate events are harmless.
type MessageEvent struct {
	MessageID  uuid.UUID `json:"message_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Notifier fans message-insert events out to the two participants.
type Notifier interface {
	PublishMessage(ctx context.Context, event MessageEvent) error
	// Subscribe delivers events addressed to userID until ctx is done or the
	// returned cancel func is called.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan MessageEvent, func(), error)
}

// RedisNotifier implements Notifier over Redis pub/sub, one channel per
// principal.
type RedisNotifier struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisNotifier(client *redis.Client, log *logrus.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, log: log}
}

func channelFor(userID uuid.UUID) string {
	return fmt.Sprintf("portal:messages:%s", userID.String())
}

// PublishMessage notifies both participants. Publishing is best-effort per
// channel; a failed publish only delays the recipient until their next fetch.
func (n *RedisNotifier) PublishMessage(ctx context.Context, event MessageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	for _, userID := range []uuid.UUID{event.ReceiverID, event.SenderID} {
		if err := n.client.Publish(ctx, channelFor(userID), payload).Err(); err != nil {
			n.log.Warnf("Failed to publish message event to %s: %+v", userID, err)
			return err
		}
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan MessageEvent, func(), error) {
	pubsub := n.client.Subscribe(ctx, channelFor(userID))

	// Confirm the subscription before handing out the channel.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	events := make(chan MessageEvent, 16)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event MessageEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.log.Warnf("Failed to decode message event: %+v", err)
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		pubsub.Close()
	}
	return events, cancel, nil
}
