package dashboard

import (
	"context"
	"fmt"

	"lead-engagement-be/internal/dto"
	"lead-engagement-be/internal/model"
	"lead-engagement-be/internal/pkg/logger"
	"lead-engagement-be/internal/repository"
	"lead-engagement-be/pkg/admin/mapper"
	"lead-engagement-be/pkg/events"
	"lead-engagement-be/pkg/widget"
)

const recentHotLimit = 5

// Aggregator handles lead dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetLeadStats retrieves lead statistics
func (a *Aggregator) GetLeadStats(ctx context.Context, leads repository.LeadSignalRepository) (*dto.LeadStats, error) {
	scores, err := leads.SessionScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("session scores: %w", err)
	}
	actions, err := leads.CountByType(ctx, events.LeadActionClicked)
	if err != nil {
		return nil, fmt.Errorf("count actions: %w", err)
	}
	topics, err := leads.SessionsByTopic(ctx)
	if err != nil {
		return nil, fmt.Errorf("sessions by topic: %w", err)
	}

	stats := Summarize(scores, topics)
	stats.Actions = actions

	// Fetch Recent Hot Leads (Limit 5)
	recent, _, err := leads.List(ctx, repository.LeadSignalFilter{
		EventType: events.LeadEngagementChanged,
		Level:     string(widget.LevelHot),
	}, recentHotLimit, 0)
	if err != nil {
		a.logger.Warn("Dashboard", "Failed to load recent hot leads", map[string]interface{}{"error": err})
	}
	stats.RecentHot = mapper.LeadSignalsToResponse(recent)

	return stats, nil
}

// Summarize buckets every session by the highest score it reached.
func Summarize(scores []model.SessionScore, topics []model.TopicCount) *dto.LeadStats {
	stats := &dto.LeadStats{
		Total:   len(scores),
		ByTopic: make(map[string]int64, len(topics)),
	}

	sum := 0
	for _, s := range scores {
		sum += s.Score
		switch widget.LevelFor(s.Score) {
		case widget.LevelHot:
			stats.Hot++
		case widget.LevelWarm:
			stats.Warm++
		default:
			stats.Cold++
		}
	}
	if stats.Total > 0 {
		stats.AvgScore = float64(sum) / float64(stats.Total)
	}

	for _, t := range topics {
		stats.ByTopic[t.Topic] = t.Count
	}
	return stats
}
