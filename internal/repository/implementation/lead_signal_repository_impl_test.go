package implementation

import (
	"context"
	"testing"
	"time"

	"lead-engagement-be/internal/model"
	"lead-engagement-be/internal/repository"
	"lead-engagement-be/internal/repository/scope"
	"lead-engagement-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost dbname=leads sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestLeadSignalFilterSpecifications(t *testing.T) {
	db := dryRunDB(t)
	filter := repository.LeadSignalFilter{
		SessionID: "s-1",
		Level:     "hot",
		Since:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var signals []model.LeadSignal
	stmt := specification.Apply(db.WithContext(context.Background()).Model(&model.LeadSignal{}), filter.Specifications()...).
		Scopes(scope.OrderByOccurredDesc).
		Find(&signals).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "lead_signals"`)
	assert.Contains(t, sql, "session_id = $1")
	assert.Contains(t, sql, "level = $2")
	assert.Contains(t, sql, "occurred_at >= $3")
	assert.NotContains(t, sql, "event_type")
	assert.Contains(t, sql, "ORDER BY occurred_at DESC")
	assert.Equal(t, []interface{}{"s-1", "hot", filter.Since}, stmt.Vars)
}

func TestEmptyFilterHasNoSpecifications(t *testing.T) {
	assert.Empty(t, repository.LeadSignalFilter{}.Specifications())
}
