package catalog

import (
	"strings"

	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/errs"
	"resourcehub/internal/models"
)

// ListCategories applies the same tier filter as resource listing.
func ListCategories(db *gorm.DB, viewer auth.Claims) ([]models.Category, error) {
	all, err := ListAllCategories(db)
	if err != nil {
		return nil, err
	}
	if viewer.IsTier1() {
		return all, nil
	}
	visible := make([]models.Category, 0, len(all))
	for _, c := range all {
		if viewer.Tier.CanView(c.RequiredTier) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func ListAllCategories(db *gorm.DB) ([]models.Category, error) {
	var cs []models.Category
	err := db.Order("sort_order asc").Find(&cs).Error
	return cs, err
}

type CreateCategoryInput struct {
	ID           string
	Name         string
	Icon         string
	Color        string
	SortOrder    int
	RequiredTier *models.Tier
}

func CreateCategory(db *gorm.DB, in CreateCategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, errs.New(errs.BadRequest, "category id is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errs.New(errs.BadRequest, "category name is required")
	}
	if in.RequiredTier != nil && !in.RequiredTier.Valid() {
		return nil, errs.New(errs.BadRequest, "invalid tier")
	}
	var count int64
	db.Model(&models.Category{}).Where("id = ?", in.ID).Count(&count)
	if count > 0 {
		return nil, errs.Newf(errs.Conflict, "category %q already exists", in.ID)
	}
	c := models.Category{
		ID:           in.ID,
		Name:         in.Name,
		Icon:         in.Icon,
		Color:        in.Color,
		SortOrder:    in.SortOrder,
		RequiredTier: in.RequiredTier,
	}
	if err := db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

type UpdateCategoryInput struct {
	Name              *string
	Icon              *string
	Color             *string
	SortOrder         *int
	RequiredTier      *models.Tier
	ClearRequiredTier bool
}

func UpdateCategory(db *gorm.DB, id string, in UpdateCategoryInput) (*models.Category, error) {
	var c models.Category
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		return nil, errs.New(errs.NotFound, "category not found")
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	if in.ClearRequiredTier {
		c.RequiredTier = nil
	} else if in.RequiredTier != nil {
		if !in.RequiredTier.Valid() {
			return nil, errs.New(errs.BadRequest, "invalid tier")
		}
		c.RequiredTier = in.RequiredTier
	}
	if err := db.Model(&c).Select("*").Omit("id", "created_at").Updates(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCategory removes the category only. Resources keep their
// category id and become orphaned; that is accepted, not an error.
func DeleteCategory(db *gorm.DB, id string) error {
	return db.Delete(&models.Category{}, "id = ?", id).Error
}
