package service

import (
	"context"
	"fmt"
	"time"

	"lead-engagement-be/internal/pkg/logger"
	"lead-engagement-be/internal/pkg/mailer"
	"lead-engagement-be/pkg/events"
	pktNats "lead-engagement-be/pkg/nats"
	"lead-engagement-be/pkg/widget"
)

const alertModule = "LeadAlertService"

// EventSubscriber registers durable handlers on the cluster-wide bus.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType string, durableName string, handler pktNats.EventHandler) error
}

type IAlertService interface {
	Start(ctx context.Context) error
	HandleEngagementChanged(ctx context.Context, event events.Event) error
}

type alertService struct {
	subscriber EventSubscriber
	mailer     mailer.IEmailService
	recipient  string
	logger     logger.ILogger
}

// NewAlertService emails recipient whenever a visitor session turns hot.
func NewAlertService(subscriber EventSubscriber, mail mailer.IEmailService, recipient string, log logger.ILogger) IAlertService {
	return &alertService{
		subscriber: subscriber,
		mailer:     mail,
		recipient:  recipient,
		logger:     log,
	}
}

func (s *alertService) Start(ctx context.Context) error {
	if s.recipient == "" {
		s.logger.Warn(alertModule, "SALES_ALERT_EMAIL not set, hot lead alerts disabled", nil)
		return nil
	}
	return s.subscriber.Subscribe(ctx, events.LeadEngagementChanged, "hot-lead-alerts", s.HandleEngagementChanged)
}

func (s *alertService) HandleEngagementChanged(ctx context.Context, event events.Event) error {
	data := event.Payload()
	level, _ := data["level"].(string)
	if widget.Level(level) != widget.LevelHot {
		return nil
	}

	alert := mailer.HotLeadAlert{
		SessionID:    stringField(data, "session_id"),
		Score:        intField(data, "score"),
		Route:        stringField(data, "route"),
		Topic:        stringField(data, "topic"),
		VisitedPages: stringsField(data, "visited_pages"),
		OccurredAt:   event.Timestamp(),
	}
	if err := s.mailer.SendHotLeadAlert(s.recipient, alert); err != nil {
		return fmt.Errorf("hot lead alert: %w", err)
	}

	s.logger.Info(alertModule, "Hot lead alert sent", map[string]interface{}{
		"session_id": alert.SessionID,
		"score":      alert.Score,
		"latency_ms": time.Since(alert.OccurredAt).Milliseconds(),
	})
	return nil
}

func stringField(data map[string]interface{}, key string) string {
	v, _ := data[key].(string)
	return v
}

// intField accepts JSON numbers decoded as float64 as well as native ints.
func intField(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func stringsField(data map[string]interface{}, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
