// Package audit keeps the append-only access log.
package audit

import (
	"time"

	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/errs"
	"resourcehub/internal/metrics"
	"resourcehub/internal/models"
)

const listLimit = 1000

type RecordInput struct {
	ResourceID    *uint
	ResourceTitle string
	ResourceURL   string
	Action        models.Action
}

// Record appends one entry, snapshotting the actor's display name and
// the resource title/url as they are right now.
func Record(db *gorm.DB, actor auth.Claims, in RecordInput) (*models.AccessLog, error) {
	if !in.Action.Valid() {
		return nil, errs.New(errs.BadRequest, "invalid action")
	}
	entry := models.AccessLog{
		UserID:        &actor.UserID,
		UserName:      actor.DisplayName(),
		ResourceID:    in.ResourceID,
		ResourceTitle: in.ResourceTitle,
		ResourceURL:   in.ResourceURL,
		Action:        in.Action,
		Timestamp:     time.Now(),
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	metrics.AccessLogActions.WithLabelValues(string(in.Action)).Inc()
	return &entry, nil
}

// Filters narrow List; all supplied filters apply together.
type Filters struct {
	UserID     *uint
	ResourceID *uint
	Action     *models.Action
	From       *time.Time
	To         *time.Time
}

// List returns the newest entries first, capped at 1000.
func List(db *gorm.DB, f Filters) ([]models.AccessLog, error) {
	q := db.Model(&models.AccessLog{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.ResourceID != nil {
		q = q.Where("resource_id = ?", *f.ResourceID)
	}
	if f.Action != nil {
		q = q.Where("action = ?", *f.Action)
	}
	if f.From != nil {
		q = q.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp <= ?", *f.To)
	}
	var logs []models.AccessLog
	err := q.Order("timestamp desc").Limit(listLimit).Find(&logs).Error
	return logs, err
}

// Clear deletes every log row. There is no soft delete.
func Clear(db *gorm.DB) error {
	return db.Where("1 = 1").Delete(&models.AccessLog{}).Error
}
