package scope

import "gorm.io/gorm"

func OrderByOccurredDesc(db *gorm.DB) *gorm.DB {
	return db.Order("occurred_at DESC")
}

// GroupBySession collapses lead signals to one row per visitor session.
func GroupBySession(db *gorm.DB) *gorm.DB {
	return db.Group("session_id")
}
