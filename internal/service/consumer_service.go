package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"creative-eval-be/internal/pkg/logger"
	"creative-eval-be/pkg/events"
	pkgNats "creative-eval-be/pkg/nats"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event bus and records each platform
// event in the structured log. It is the audit trail for evaluations and
// chat turns.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

// Consume blocks, processing events until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for msg := range messages {
		cs.handle(msg)
		msg.Ack()
	}
	return nil
}

func (cs *consumerService) handle(msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Warn("Consumer", "Malformed event payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info("Consumer", "Event received", map[string]interface{}{
		"type":        envelope.Type,
		"payload":     envelope.Payload,
		"occurred_at": envelope.OccurredAt,
	})
}

// natsConsumerService is the audit trail when events ride on NATS instead
// of the in-process bus.
type natsConsumerService struct {
	subscriber *pkgNats.Subscriber
	logger     logger.ILogger
}

func NewNatsConsumerService(subscriber *pkgNats.Subscriber, log logger.ILogger) IConsumerService {
	return &natsConsumerService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (cs *natsConsumerService) Consume(ctx context.Context) error {
	err := cs.subscriber.Subscribe("events.>", "audit-log", func(ctx context.Context, envelope events.Envelope) error {
		cs.logger.Info("Consumer", "Event received", map[string]interface{}{
			"type":        envelope.Type,
			"payload":     envelope.Payload,
			"occurred_at": envelope.OccurredAt,
		})
		return nil
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}
