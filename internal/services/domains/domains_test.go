package domains

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

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

func enableRestriction(t *testing.T, db *gorm.DB) {
	t.Helper()
	_, err := settings.Upsert(db, settings.KeyDomainRestriction, "true", 1)
	require.NoError(t, err)
}

func TestIsEmailDomainAllowedRestrictionOff(t *testing.T) {
	db := testDB(t)
	// allowlist contents are irrelevant while the setting is off
	_, err := Create(db, 1, CreateInput{Domain: "acme.com", IsActive: true})
	require.NoError(t, err)

	for _, email := range []string{"a@acme.com", "b@other.com", "not-an-email", ""} {
		ok, err := IsEmailDomainAllowed(db, email)
		require.NoError(t, err)
		assert.True(t, ok, "email %q", email)
	}
}

func TestIsEmailDomainAllowedRestrictionOn(t *testing.T) {
	db := testDB(t)
	enableRestriction(t, db)
	_, err := Create(db, 1, CreateInput{Domain: "Acme.COM", IsActive: true})
	require.NoError(t, err)
	_, err = Create(db, 1, CreateInput{Domain: "inactive.com", IsActive: false})
	require.NoError(t, err)

	tests := []struct {
		email string
		want  bool
	}{
		{"user@acme.com", true},
		{"user@ACME.com", true},
		{"user@other.com", false},
		{"user@inactive.com", false},
		{"no-at-sign", false},
		{"trailing@", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			ok, err := IsEmailDomainAllowed(db, tc.email)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestCreateDomain(t *testing.T) {
	db := testDB(t)

	d, err := Create(db, 1, CreateInput{Domain: "  ExAmple.Com ", Description: "corp", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "example.com", d.Domain, "stored lowercase and trimmed")

	_, err = Create(db, 1, CreateInput{Domain: "EXAMPLE.COM", IsActive: true})
	assert.Equal(t, errs.Conflict, errs.KindOf(err))

	_, err = Create(db, 1, CreateInput{Domain: "  "})
	assert.Equal(t, errs.BadRequest, errs.KindOf(err))
}

func TestUpdateAndDeleteDomain(t *testing.T) {
	db := testDB(t)
	enableRestriction(t, db)
	d, err := Create(db, 1, CreateInput{Domain: "acme.com", IsActive: true})
	require.NoError(t, err)

	inactive := false
	_, err = Update(db, d.ID, UpdateInput{IsActive: &inactive})
	require.NoError(t, err)

	ok, err := IsEmailDomainAllowed(db, "user@acme.com")
	require.NoError(t, err)
	assert.False(t, ok, "toggled-off domain no longer allows invites")

	_, err = Update(db, 9999, UpdateInput{IsActive: &inactive})
	assert.Equal(t, errs.NotFound, errs.KindOf(err))

	require.NoError(t, Delete(db, d.ID))
	ds, err := List(db)
	require.NoError(t, err)
	assert.Empty(t, ds)
}
