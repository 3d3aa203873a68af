package catalog

import (
	"strings"

	"gorm.io/gorm"

	"resourcehub/internal/errs"
	"resourcehub/internal/models"
)

// Labels are a flat registry. Resources reference them by name inside
// their serialized label list, not by foreign key.

func ListLabels(db *gorm.DB) ([]models.Label, error) {
	var ls []models.Label
	err := db.Order("name asc").Find(&ls).Error
	return ls, err
}

func CreateLabel(db *gorm.DB, name string) (*models.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.New(errs.BadRequest, "label name is required")
	}
	var count int64
	db.Model(&models.Label{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return nil, errs.Newf(errs.Conflict, "label %q already exists", name)
	}
	l := models.Label{Name: name}
	if err := db.Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func DeleteLabel(db *gorm.DB, id uint) error {
	return db.Delete(&models.Label{}, "id = ?", id).Error
}
