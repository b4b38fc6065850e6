package audit

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cognicard/cognicard/internal/entities"
)

// Repository provides append-only access to the audit event log.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent appends an audit event.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("log audit event: %w", err)
	}
	return nil
}

// RecentEvents returns the newest events, capped at limit.
func (r *Repository) RecentEvents(limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []entities.AuditEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// DeleteOlderThan removes events past the retention window and returns the
// number deleted.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
