// Package settings is a small key-value store for global flags.
package settings

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"resourcehub/internal/models"
)

const KeyDomainRestriction = "domainRestrictionEnabled"

// Get returns the setting for key, or nil when it was never written.
func Get(db *gorm.DB, key string) (*models.Setting, error) {
	var s models.Setting
	err := db.First(&s, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func Upsert(db *gorm.DB, key, value string, updatedBy uint) (*models.Setting, error) {
	existing, err := Get(db, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Value = value
		existing.UpdatedBy = &updatedBy
		existing.UpdatedAt = time.Now()
		if err := db.Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}
	s := models.Setting{Key: key, Value: value, UpdatedBy: &updatedBy, UpdatedAt: time.Now()}
	if err := db.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func DomainRestrictionEnabled(db *gorm.DB) (bool, error) {
	s, err := Get(db, KeyDomainRestriction)
	if err != nil {
		return false, err
	}
	return s != nil && s.Value == "true", nil
}
