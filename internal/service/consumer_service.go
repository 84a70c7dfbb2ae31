// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"
	"ai-resume-be/pkg/events"
	pktNats "ai-resume-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process enhancement queue and bridges
// completed entries onto the NATS event bus, where the notification
// service picks them up.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEnhancementCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.EnhancementHistoryRepository().FindOne(ctx, specification.ByID{ID: payload.HistoryId})
	if err != nil {
		log.Printf("[ERROR] Failed to get history entry %s: %v", payload.HistoryId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if entry == nil {
		log.Printf("[WARN] History entry not found: %s", payload.HistoryId)
		msg.Ack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "ENHANCEMENT_COMPLETED",
			Data: map[string]interface{}{
				"user_id":    payload.UserId.String(),
				"history_id": payload.HistoryId.String(),
				"tag":        payload.Tag,
				"message":    entry.EffectiveUserMessage(),
			},
			OccurredAt: time.Now(),
		}
		if payload.ChatId != nil {
			evt.Data["chat_id"] = payload.ChatId.String()
		}

		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[ERROR] Failed to publish ENHANCEMENT_COMPLETED for %s: %v", payload.HistoryId, err)
			msg.Nack()
			return
		}
	}

	msg.Ack()
}
