// Package catalog manages the directory of resources, their
// categories, and the label registry.
package catalog

import (
	"strings"

	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/errs"
	"resourcehub/internal/models"
)

// ListResources returns resources visible to the viewer, sort order
// ascending. Tier-1 viewers see everything; for everyone else,
// entries with a required tier the viewer cannot meet are filtered
// out of the returned set. Nothing is mutated.
func ListResources(db *gorm.DB, viewer auth.Claims) ([]models.Resource, error) {
	all, err := ListAllResources(db)
	if err != nil {
		return nil, err
	}
	if viewer.IsTier1() {
		return all, nil
	}
	visible := make([]models.Resource, 0, len(all))
	for _, r := range all {
		if viewer.Tier.CanView(r.RequiredTier) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// ListAllResources is the unfiltered administrative view.
func ListAllResources(db *gorm.DB) ([]models.Resource, error) {
	var rs []models.Resource
	err := db.Order("sort_order asc").Find(&rs).Error
	return rs, err
}

type CreateResourceInput struct {
	Title        string
	Description  string
	URL          string
	Category     string
	Icon         string
	Labels       models.StringList
	RequiredTier *models.Tier
	IsExternal   *bool
}

func CreateResource(db *gorm.DB, actor auth.Claims, in CreateResourceInput) (*models.Resource, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.New(errs.BadRequest, "title is required")
	}
	if strings.TrimSpace(in.URL) == "" {
		return nil, errs.New(errs.BadRequest, "url is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, errs.New(errs.BadRequest, "category is required")
	}
	if in.RequiredTier != nil && !in.RequiredTier.Valid() {
		return nil, errs.New(errs.BadRequest, "invalid tier")
	}
	r := models.Resource{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		URL:          strings.TrimSpace(in.URL),
		Category:     in.Category,
		Icon:         in.Icon,
		Labels:       in.Labels,
		RequiredTier: in.RequiredTier,
		IsExternal:   true,
		CreatedBy:    &actor.UserID,
	}
	if in.IsExternal != nil {
		r.IsExternal = *in.IsExternal
	}
	if err := db.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateResourceInput patches only the supplied fields. RequiredTier
// is tri-state: left alone when both fields are unset, cleared when
// ClearRequiredTier is set, replaced otherwise.
type UpdateResourceInput struct {
	Title             *string
	Description       *string
	URL               *string
	Category          *string
	Icon              *string
	Labels            *models.StringList
	RequiredTier      *models.Tier
	ClearRequiredTier bool
	IsExternal        *bool
	IsFavorite        *bool
}

func UpdateResource(db *gorm.DB, id uint, in UpdateResourceInput) (*models.Resource, error) {
	var r models.Resource
	if err := db.First(&r, "id = ?", id).Error; err != nil {
		return nil, errs.New(errs.NotFound, "resource not found")
	}
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.URL != nil {
		r.URL = *in.URL
	}
	if in.Category != nil {
		r.Category = *in.Category
	}
	if in.Icon != nil {
		r.Icon = *in.Icon
	}
	if in.Labels != nil {
		r.Labels = *in.Labels
	}
	if in.ClearRequiredTier {
		r.RequiredTier = nil
	} else if in.RequiredTier != nil {
		if !in.RequiredTier.Valid() {
			return nil, errs.New(errs.BadRequest, "invalid tier")
		}
		r.RequiredTier = in.RequiredTier
	}
	if in.IsExternal != nil {
		r.IsExternal = *in.IsExternal
	}
	if in.IsFavorite != nil {
		r.IsFavorite = *in.IsFavorite
	}
	// Save with Select so a cleared tier writes NULL instead of being
	// dropped as a zero value.
	if err := db.Model(&r).Select("*").Omit("id", "created_at", "created_by").Updates(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func DeleteResource(db *gorm.DB, id uint) error {
	return db.Delete(&models.Resource{}, "id = ?", id).Error
}

// ReorderResources rewrites each listed resource's sort order to its
// position index. The batch runs in one transaction so a failure
// mid-sequence leaves the previous ordering intact.
func ReorderResources(db *gorm.DB, orderedIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&models.Resource{}).Where("id = ?", id).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
