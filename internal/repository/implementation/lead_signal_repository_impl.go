package implementation

import (
	"context"

	"lead-engagement-be/internal/model"
	"lead-engagement-be/internal/repository"
	"lead-engagement-be/internal/repository/scope"
	"lead-engagement-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeadSignalRepositoryImpl struct {
	db *gorm.DB
}

func NewLeadSignalRepository(db *gorm.DB) repository.LeadSignalRepository {
	return &LeadSignalRepositoryImpl{db: db}
}

// Create ignores redelivered signals with an id that is already stored.
func (r *LeadSignalRepositoryImpl) Create(ctx context.Context, signal *model.LeadSignal) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(signal).Error
}

func (r *LeadSignalRepositoryImpl) List(ctx context.Context, filter repository.LeadSignalFilter, limit, offset int) ([]model.LeadSignal, int64, error) {
	var signals []model.LeadSignal
	var total int64

	db := specification.Apply(r.db.WithContext(ctx).Model(&model.LeadSignal{}), filter.Specifications()...)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Scopes(scope.OrderByOccurredDesc).
		Scopes(specification.Pagination{Limit: limit, Offset: offset}.Apply).
		Find(&signals).Error

	return signals, total, err
}

func (r *LeadSignalRepositoryImpl) SessionScores(ctx context.Context) ([]model.SessionScore, error) {
	var scores []model.SessionScore
	err := r.db.WithContext(ctx).
		Model(&model.LeadSignal{}).
		Select("session_id, MAX(score) AS score").
		Scopes(scope.GroupBySession).
		Scan(&scores).Error
	return scores, err
}

func (r *LeadSignalRepositoryImpl) CountByType(ctx context.Context, eventType string) (int64, error) {
	var count int64
	err := specification.Apply(r.db.WithContext(ctx).Model(&model.LeadSignal{}),
		specification.ByEventType{EventType: eventType},
	).Count(&count).Error
	return count, err
}

func (r *LeadSignalRepositoryImpl) SessionsByTopic(ctx context.Context) ([]model.TopicCount, error) {
	var counts []model.TopicCount
	err := specification.Apply(r.db.WithContext(ctx).Model(&model.LeadSignal{}), specification.WithTopic{}).
		Select("topic, COUNT(DISTINCT session_id) AS count").
		Group("topic").
		Scan(&counts).Error
	return counts, err
}
