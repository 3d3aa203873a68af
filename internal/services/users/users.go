// Package users holds the tier-1 user administration operations.
package users

import (
	"strings"

	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/errs"
	"resourcehub/internal/models"
)

func List(db *gorm.DB) ([]models.User, error) {
	var us []models.User
	err := db.Order("name asc").Find(&us).Error
	return us, err
}

func UpdateTier(db *gorm.DB, id uint, tier models.Tier) (*models.User, error) {
	if !tier.Valid() {
		return nil, errs.New(errs.BadRequest, "invalid tier")
	}
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		return nil, errs.New(errs.NotFound, "user not found")
	}
	u.Tier = tier
	if err := db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

func UpdateProfile(db *gorm.DB, id uint, in UpdateProfileInput) (*models.User, error) {
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		return nil, errs.New(errs.NotFound, "user not found")
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, errs.New(errs.BadRequest, "a valid email address is required")
		}
		var count int64
		db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count)
		if count > 0 {
			return nil, errs.New(errs.Conflict, "this email address is already registered")
		}
		u.Email = email
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 8 {
			return nil, errs.New(errs.BadRequest, "password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.HashedPassword = hash
	}
	if err := db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
