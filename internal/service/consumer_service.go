package service

import (
	"context"
	"encoding/json"
	"fmt"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/pkg/logger"
	"lead-engagement-be/internal/repository"
	"lead-engagement-be/pkg/admin/mapper"
	"lead-engagement-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "LeadSignalConsumer"

// EventPublisher forwards lead events to the cluster-wide bus (NATS JetStream).
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// LeadExporter ships lead signals to the CRM (Kafka).
type LeadExporter interface {
	Send(ctx context.Context, key string, value any) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	repo       repository.LeadSignalRepository
	events     EventPublisher
	exporter   LeadExporter
	logger     logger.ILogger
}

// NewConsumerService wires the lead signal pipeline. events and exporter are optional.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	repo repository.LeadSignalRepository,
	eventPublisher EventPublisher,
	exporter LeadExporter,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		repo:       repo,
		events:     eventPublisher,
		exporter:   exporter,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	var signal dto.LeadSignalMessage
	if err := json.Unmarshal(msg.Payload, &signal); err != nil {
		cs.logger.Error(consumerModule, "Dropping malformed lead signal", map[string]interface{}{
			"message_uuid": msg.UUID,
			"error":        err,
		})
		msg.Ack()
		return
	}

	if err := cs.handle(ctx, signal); err != nil {
		cs.logger.Error(consumerModule, "Failed to store lead signal", map[string]interface{}{
			"signal_id":  signal.Id,
			"session_id": signal.SessionId,
			"error":      err,
		})
		msg.Nack()
		return
	}
	msg.Ack()
}

// handle stores the signal, then fans it out. Only the store is required to succeed.
func (cs *consumerService) handle(ctx context.Context, signal dto.LeadSignalMessage) error {
	record, err := mapper.LeadSignalMessageToModel(signal)
	if err != nil {
		return err
	}
	if err := cs.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("persist lead signal: %w", err)
	}

	if cs.events != nil && signal.Type != events.LeadSessionStarted {
		if err := cs.events.Publish(ctx, toLeadEvent(signal)); err != nil {
			cs.logger.Warn(consumerModule, "Failed to publish lead event", map[string]interface{}{
				"signal_id": signal.Id,
				"error":     err,
			})
		}
	}

	if cs.exporter != nil {
		if err := cs.exporter.Send(ctx, signal.SessionId, signal); err != nil {
			cs.logger.Warn(consumerModule, "Failed to export lead signal", map[string]interface{}{
				"signal_id": signal.Id,
				"error":     err,
			})
		}
	}

	cs.logger.Debug(consumerModule, "Lead signal processed", map[string]interface{}{
		"signal_id":  signal.Id,
		"type":       signal.Type,
		"session_id": signal.SessionId,
		"level":      signal.Level,
	})
	return nil
}

func toLeadEvent(signal dto.LeadSignalMessage) events.BaseEvent {
	data := map[string]interface{}{
		"signal_id":     signal.Id,
		"session_id":    signal.SessionId,
		"route":         signal.Route,
		"topic":         signal.Topic,
		"score":         signal.Score,
		"level":         string(signal.Level),
		"visited_pages": signal.VisitedPages,
	}
	if signal.PreviousLevel != "" {
		data["previous_level"] = string(signal.PreviousLevel)
	}
	if signal.Action != nil {
		data["action_label"] = signal.Action.Label
		data["action_to"] = signal.Action.To
		data["action"] = signal.Action.Action
	}
	return events.BaseEvent{
		Type:       signal.Type,
		Data:       data,
		OccurredAt: signal.OccurredAt,
	}
}
