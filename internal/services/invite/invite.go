// Package invite implements the invitation lifecycle: single-use,
// time-bounded tokens that authorize one registration at a
// pre-assigned tier.
package invite

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/errs"
	"resourcehub/internal/models"
	"resourcehub/internal/services/domains"
)

const (
	tokenLen          = 32
	defaultExpiryDays = 7
	maxExpiryDays     = 30
	tokenRetries      = 3
)

type CreateInput struct {
	Email         string
	InitialTier   models.Tier
	Note          string
	ExpiresInDays int
}

func newToken() (string, error) {
	b := make([]byte, tokenLen/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create issues a pending invitation. When the domain-restriction
// setting is on, the target email's domain must be on the active
// allowlist. Token generation retries on a unique-index collision.
func Create(db *gorm.DB, actor auth.Claims, in CreateInput) (*models.Invitation, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.New(errs.BadRequest, "a valid email address is required")
	}
	if !in.InitialTier.Valid() {
		return nil, errs.New(errs.BadRequest, "invalid tier")
	}
	days := in.ExpiresInDays
	if days == 0 {
		days = defaultExpiryDays
	}
	if days < 1 || days > maxExpiryDays {
		return nil, errs.Newf(errs.BadRequest, "expiry must be between 1 and %d days", maxExpiryDays)
	}

	allowed, err := domains.IsEmailDomainAllowed(db, email)
	if err != nil {
		return nil, err
	}
	if !allowed {
		domain := email[strings.Index(email, "@")+1:]
		return nil, errs.Newf(errs.BadRequest, "domain %q is not allowed; check the domain settings", domain)
	}

	inv := models.Invitation{
		Email:         email,
		InitialTier:   in.InitialTier,
		Status:        models.InvitationPending,
		InvitedBy:     actor.UserID,
		InvitedByName: actor.DisplayName(),
		Note:          in.Note,
		ExpiresAt:     time.Now().AddDate(0, 0, days),
	}
	for attempt := 0; attempt < tokenRetries; attempt++ {
		tok, err := newToken()
		if err != nil {
			return nil, err
		}
		inv.Token = tok
		err = db.Create(&inv).Error
		if err == nil {
			return &inv, nil
		}
		var count int64
		db.Model(&models.Invitation{}).Where("token = ?", tok).Count(&count)
		if count == 0 {
			return nil, err
		}
		// token collision, try a fresh one
		inv.ID = 0
	}
	return nil, errs.New(errs.Conflict, "could not issue a unique invitation token")
}

// byToken loads an invitation and applies the three lifecycle checks
// shared by verify, accept, and register: it must exist, still be
// pending, and not be past its expiry. Expiry is inferred from the
// timestamp; no stored state transition happens here.
func byToken(db *gorm.DB, token string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := db.First(&inv, "token = ?", token).Error; err != nil {
		return nil, errs.New(errs.NotFound, "invitation not found")
	}
	if inv.Status != models.InvitationPending {
		return nil, errs.New(errs.BadRequest, "this invitation has already been used")
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, errs.New(errs.BadRequest, "this invitation has expired")
	}
	return &inv, nil
}

// VerifyToken is the public pre-registration check. It returns the
// invitation (inviter name, initial tier) for display.
func VerifyToken(db *gorm.DB, token string) (*models.Invitation, error) {
	return byToken(db, token)
}

func markAccepted(db *gorm.DB, inv *models.Invitation, userID uint) error {
	now := time.Now()
	inv.Status = models.InvitationAccepted
	inv.AcceptedBy = &userID
	inv.AcceptedAt = &now
	return db.Model(inv).Updates(map[string]any{
		"status":      inv.Status,
		"accepted_by": userID,
		"accepted_at": now,
	}).Error
}

// Accept consumes an invitation for an already-registered caller,
// moving them to the invitation's initial tier.
func Accept(db *gorm.DB, actor auth.Claims, token string) (*models.Invitation, error) {
	inv, err := byToken(db, token)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("id = ?", actor.UserID).
		Update("tier", inv.InitialTier).Error; err != nil {
		return nil, err
	}
	if err := markAccepted(db, inv, actor.UserID); err != nil {
		return nil, err
	}
	return inv, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Token    string
}

// Register is the only path that creates a non-seeded user. The
// invitation checks all pass before any write happens.
func Register(db *gorm.DB, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if name == "" {
		return nil, errs.New(errs.BadRequest, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.New(errs.BadRequest, "a valid email address is required")
	}
	if len(in.Password) < 8 {
		return nil, errs.New(errs.BadRequest, "password must be at least 8 characters")
	}
	if in.Token == "" {
		return nil, errs.New(errs.BadRequest, "an invitation token is required")
	}

	inv, err := byToken(db, in.Token)
	if err != nil {
		return nil, err
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, errs.New(errs.Conflict, "this email address is already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := models.User{
		Name:           name,
		Email:          email,
		HashedPassword: hash,
		Role:           models.RoleUser,
		Tier:           inv.InitialTier,
		LastSignedIn:   time.Now(),
	}
	if err := db.Create(&u).Error; err != nil {
		return nil, err
	}
	if err := markAccepted(db, inv, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every invitation, newest first. Callers filter for
// "active" (pending and unexpired) client-side.
func List(db *gorm.DB) ([]models.Invitation, error) {
	var invs []models.Invitation
	err := db.Order("created_at desc").Find(&invs).Error
	return invs, err
}

func Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.Invitation{}, "id = ?", id).Error
}
