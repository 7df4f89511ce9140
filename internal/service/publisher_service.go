package service

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const LeadSignalTopic = "WIDGET_LEAD_SIGNALS"

type IPublisherService interface {
	Publish(topic string, payload interface{}) error
}

type publisherService struct {
	publisher message.Publisher
}

func NewPublisherService(publisher message.Publisher) IPublisherService {
	return &publisherService{publisher: publisher}
}

func (p *publisherService) Publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	return p.publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), data))
}
