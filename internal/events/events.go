// Package events publishes recommendation lifecycle events on an
// in-process pub/sub bus so other components (metrics, audit, future
// outcome tracking) can subscribe without coupling to the service.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	TopicRecommendationsGenerated = "recommendations.generated"
	TopicInteractionRecorded      = "interactions.recorded"
)

// RecommendationsGenerated is emitted after a ranked list is produced
// for a user.
type RecommendationsGenerated struct {
	EventID     string    `json:"event_id"`
	UserID      int64     `json:"user_id"`
	Domain      string    `json:"domain"`
	Count       int       `json:"count"`
	FromCache   bool      `json:"from_cache"`
	GeneratedAt time.Time `json:"generated_at"`
}

// InteractionRecorded is emitted when a user action is tracked.
type InteractionRecorded struct {
	EventID string    `json:"event_id"`
	UserID  int64     `json:"user_id"`
	ItemID  string    `json:"item_id"`
	Domain  string    `json:"domain"`
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
}

// Bus wraps a gochannel pub/sub. Subscribe before publishing: the
// channel transport does not buffer for absent subscribers.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, logger),
	}
}

func (b *Bus) publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event for %s: %w", topic, err)
	}
	msg := message.NewMessage(uuid.New().String(), data)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// PublishGenerated emits a recommendations.generated event.
func (b *Bus) PublishGenerated(ev RecommendationsGenerated) error {
	if ev.EventID == "" {
		ev.EventID = uuid.New().String()
	}
	return b.publish(TopicRecommendationsGenerated, ev)
}

// PublishInteraction emits an interactions.recorded event.
func (b *Bus) PublishInteraction(ev InteractionRecorded) error {
	if ev.EventID == "" {
		ev.EventID = uuid.New().String()
	}
	return b.publish(TopicInteractionRecorded, ev)
}

// Subscribe returns a channel of raw messages for a topic. The caller
// must Ack every message.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
