package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher sends events to the configured bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Envelope is the wire form of an event on the bus.
type Envelope struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// GoChannelPublisher publishes events on the in-process watermill bus.
type GoChannelPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
}

var _ Publisher = (*GoChannelPublisher)(nil)

func NewGoChannelPublisher(pubSub *gochannel.GoChannel, topic string) *GoChannelPublisher {
	return &GoChannelPublisher{pubSub: pubSub, topic: topic}
}

func (p *GoChannelPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(Envelope{
		Type:       event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topic, msg)
}
