package invite

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/errs"
	"resourcehub/internal/models"
	"resourcehub/internal/services/settings"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func admin() auth.Claims {
	return auth.Claims{UserID: 1, Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, Tier: models.Tier1}
}

func TestCreateInvitation(t *testing.T) {
	db := testDB(t)

	inv, err := Create(db, admin(), CreateInput{Email: "Alice@Example.com", InitialTier: models.Tier2})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", inv.Email)
	assert.Equal(t, models.Tier2, inv.InitialTier)
	assert.Equal(t, models.InvitationPending, inv.Status)
	assert.Len(t, inv.Token, 32)
	assert.Equal(t, uint(1), inv.InvitedBy)
	assert.Equal(t, "Admin", inv.InvitedByName)
	// default window is 7 days
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), inv.ExpiresAt, time.Minute)
}

func TestCreateInvitationValidation(t *testing.T) {
	db := testDB(t)
	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing email", CreateInput{InitialTier: models.Tier2}},
		{"email without domain part", CreateInput{Email: "alice", InitialTier: models.Tier2}},
		{"invalid tier", CreateInput{Email: "a@b.com", InitialTier: models.Tier("7")}},
		{"expiry too long", CreateInput{Email: "a@b.com", InitialTier: models.Tier2, ExpiresInDays: 31}},
		{"negative expiry", CreateInput{Email: "a@b.com", InitialTier: models.Tier2, ExpiresInDays: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Create(db, admin(), tc.in)
			require.Error(t, err)
			assert.Equal(t, errs.BadRequest, errs.KindOf(err))
		})
	}
}

func TestCreateInvitationDomainRestriction(t *testing.T) {
	db := testDB(t)
	_, err := settings.Upsert(db, settings.KeyDomainRestriction, "true", 1)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AllowedDomain{Domain: "acme.com", IsActive: true}).Error)

	_, err = Create(db, admin(), CreateInput{Email: "bob@other.com", InitialTier: models.Tier3})
	require.Error(t, err)
	assert.Equal(t, errs.BadRequest, errs.KindOf(err))
	assert.Contains(t, err.Error(), "other.com")

	inv, err := Create(db, admin(), CreateInput{Email: "bob@acme.com", InitialTier: models.Tier3})
	require.NoError(t, err)
	assert.Equal(t, "bob@acme.com", inv.Email)
}

func TestVerifyToken(t *testing.T) {
	db := testDB(t)
	inv, err := Create(db, admin(), CreateInput{Email: "alice@example.com", InitialTier: models.Tier2})
	require.NoError(t, err)

	got, err := VerifyToken(db, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	_, err = VerifyToken(db, "nope")
	assert.Equal(t, errs.NotFound, errs.KindOf(err))

	// already used
	uid := uint(9)
	require.NoError(t, db.Model(inv).Updates(map[string]any{
		"status": models.InvitationAccepted, "accepted_by": uid,
	}).Error)
	_, err = VerifyToken(db, inv.Token)
	require.Error(t, err)
	assert.Equal(t, errs.BadRequest, errs.KindOf(err))
	assert.Contains(t, err.Error(), "already been used")
}

func TestVerifyTokenExpired(t *testing.T) {
	db := testDB(t)
	inv := models.Invitation{
		Email:       "late@example.com",
		InitialTier: models.Tier4,
		Token:       "feedfacefeedfacefeedfacefeedface",
		Status:      models.InvitationPending,
		InvitedBy:   1,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&inv).Error)

	_, err := VerifyToken(db, inv.Token)
	require.Error(t, err)
	assert.Equal(t, errs.BadRequest, errs.KindOf(err))
	assert.Contains(t, err.Error(), "expired")

	// lazy expiry: the stored status is untouched
	var stored models.Invitation
	require.NoError(t, db.First(&stored, inv.ID).Error)
	assert.Equal(t, models.InvitationPending, stored.Status)
}

func TestRegister(t *testing.T) {
	db := testDB(t)
	inv, err := Create(db, admin(), CreateInput{Email: "alice@example.com", InitialTier: models.Tier3})
	require.NoError(t, err)

	u, err := Register(db, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
		Token:    inv.Token,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Tier3, u.Tier)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEmpty(t, u.HashedPassword)
	assert.NotEqual(t, "hunter2hunter2", u.HashedPassword)

	var stored models.Invitation
	require.NoError(t, db.First(&stored, inv.ID).Error)
	assert.Equal(t, models.InvitationAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedBy)
	assert.Equal(t, u.ID, *stored.AcceptedBy)
	assert.NotNil(t, stored.AcceptedAt)

	// a token is consumable exactly once
	_, err = Register(db, RegisterInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "hunter2hunter2",
		Token:    inv.Token,
	})
	require.Error(t, err)
	assert.Equal(t, errs.BadRequest, errs.KindOf(err))
	assert.Contains(t, err.Error(), "already been used")
}

func TestRegisterValidation(t *testing.T) {
	db := testDB(t)
	inv, err := Create(db, admin(), CreateInput{Email: "alice@example.com", InitialTier: models.Tier3})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   RegisterInput
		kind errs.Kind
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "12345678", Token: inv.Token}, errs.BadRequest},
		{"short password", RegisterInput{Name: "A", Email: "a@b.com", Password: "short", Token: inv.Token}, errs.BadRequest},
		{"missing token", RegisterInput{Name: "A", Email: "a@b.com", Password: "12345678"}, errs.BadRequest},
		{"unknown token", RegisterInput{Name: "A", Email: "a@b.com", Password: "12345678", Token: "missing"}, errs.NotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Register(db, tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.kind, errs.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.User{
		Name: "Existing", Email: "alice@example.com", HashedPassword: "x",
		Role: models.RoleUser, Tier: models.Tier5,
	}).Error)
	inv, err := Create(db, admin(), CreateInput{Email: "alice@example.com", InitialTier: models.Tier3})
	require.NoError(t, err)

	_, err = Register(db, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter2hunter2", Token: inv.Token,
	})
	require.Error(t, err)
	assert.Equal(t, errs.Conflict, errs.KindOf(err))

	// the failed registration did not consume the invitation
	var stored models.Invitation
	require.NoError(t, db.First(&stored, inv.ID).Error)
	assert.Equal(t, models.InvitationPending, stored.Status)
}

func TestAccept(t *testing.T) {
	db := testDB(t)
	u := models.User{Name: "Carol", Email: "carol@example.com", HashedPassword: "x",
		Role: models.RoleUser, Tier: models.Tier5}
	require.NoError(t, db.Create(&u).Error)
	inv, err := Create(db, admin(), CreateInput{Email: "carol@example.com", InitialTier: models.Tier2})
	require.NoError(t, err)

	actor := auth.Claims{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Tier: u.Tier}
	got, err := Accept(db, actor, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, models.Tier2, got.InitialTier)

	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, models.Tier2, stored.Tier)

	_, err = Accept(db, actor, inv.Token)
	require.Error(t, err)
	assert.Equal(t, errs.BadRequest, errs.KindOf(err))
}

func TestListAndDelete(t *testing.T) {
	db := testDB(t)
	first, err := Create(db, admin(), CreateInput{Email: "a@example.com", InitialTier: models.Tier5})
	require.NoError(t, err)
	// created_at ordering needs distinct timestamps
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Minute)).Error)
	second, err := Create(db, admin(), CreateInput{Email: "b@example.com", InitialTier: models.Tier5})
	require.NoError(t, err)

	invs, err := List(db)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, second.ID, invs[0].ID, "newest first")

	require.NoError(t, Delete(db, first.ID))
	invs, err = List(db)
	require.NoError(t, err)
	assert.Len(t, invs, 1)
}
