// Package domains manages the invitation email allowlist and the
// global setting that turns it on.
package domains

import (
	"strings"

	"gorm.io/gorm"

	"resourcehub/internal/errs"
	"resourcehub/internal/models"
	"resourcehub/internal/services/settings"
)

type CreateInput struct {
	Domain      string
	Description string
	IsActive    bool
}

func Create(db *gorm.DB, actor uint, in CreateInput) (*models.AllowedDomain, error) {
	domain := strings.TrimSpace(strings.ToLower(in.Domain))
	if domain == "" {
		return nil, errs.New(errs.BadRequest, "domain is required")
	}
	var count int64
	db.Model(&models.AllowedDomain{}).Where("domain = ?", domain).Count(&count)
	if count > 0 {
		return nil, errs.Newf(errs.Conflict, "domain %q is already on the allowlist", domain)
	}
	d := models.AllowedDomain{
		Domain:      domain,
		Description: in.Description,
		IsActive:    in.IsActive,
		CreatedBy:   &actor,
	}
	if err := db.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

type UpdateInput struct {
	IsActive    *bool
	Description *string
}

func Update(db *gorm.DB, id uint, in UpdateInput) (*models.AllowedDomain, error) {
	var d models.AllowedDomain
	if err := db.First(&d, "id = ?", id).Error; err != nil {
		return nil, errs.New(errs.NotFound, "domain not found")
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if err := db.Save(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.AllowedDomain{}, "id = ?", id).Error
}

func List(db *gorm.DB) ([]models.AllowedDomain, error) {
	var ds []models.AllowedDomain
	err := db.Order("domain asc").Find(&ds).Error
	return ds, err
}

// IsEmailDomainAllowed reports whether email may be invited. With the
// restriction setting off it is always true; with it on, the part
// after "@" (lowercased) must match an active allowlist entry.
func IsEmailDomainAllowed(db *gorm.DB, email string) (bool, error) {
	enabled, err := settings.DomainRestrictionEnabled(db)
	if err != nil {
		return false, err
	}
	if !enabled {
		return true, nil
	}
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false, nil
	}
	domain := strings.ToLower(email[at+1:])
	var count int64
	err = db.Model(&models.AllowedDomain{}).
		Where("domain = ? AND is_active = ?", domain, true).
		Count(&count).Error
	return count > 0, err
}
