package audit

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
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestRecordSnapshots(t *testing.T) {
	db := testDB(t)
	actor := auth.Claims{UserID: 7, Name: "Grace", Email: "grace@example.com", Tier: models.Tier3}
	rid := uint(42)

	entry, err := Record(db, actor, RecordInput{
		ResourceID:    &rid,
		ResourceTitle: "Wiki",
		ResourceURL:   "https://wiki.example.com",
		Action:        models.ActionView,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", entry.UserName)
	assert.Equal(t, "Wiki", entry.ResourceTitle)
	assert.WithinDuration(t, time.Now(), entry.Timestamp, time.Minute)

	// name snapshot falls back to email, then "Unknown"
	entry, err = Record(db, auth.Claims{UserID: 8, Email: "no-name@example.com"},
		RecordInput{Action: models.ActionCreate})
	require.NoError(t, err)
	assert.Equal(t, "no-name@example.com", entry.UserName)

	entry, err = Record(db, auth.Claims{UserID: 9}, RecordInput{Action: models.ActionDelete})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", entry.UserName)

	_, err = Record(db, actor, RecordInput{Action: models.Action("peek")})
	assert.Equal(t, errs.BadRequest, errs.KindOf(err))
}

func seedLogs(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	uid1, uid2, rid1, rid2 := uint(1), uint(2), uint(10), uint(20)
	rows := []models.AccessLog{
		{UserID: &uid1, UserName: "A", ResourceID: &rid1, Action: models.ActionView, Timestamp: base},
		{UserID: &uid1, UserName: "A", ResourceID: &rid2, Action: models.ActionEdit, Timestamp: base.Add(time.Hour)},
		{UserID: &uid2, UserName: "B", ResourceID: &rid1, Action: models.ActionView, Timestamp: base.Add(2 * time.Hour)},
		{UserID: &uid2, UserName: "B", ResourceID: &rid2, Action: models.ActionDelete, Timestamp: base.Add(3 * time.Hour)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestListFilters(t *testing.T) {
	db := testDB(t)
	seedLogs(t, db)

	all, err := List(db, Filters{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, models.ActionDelete, all[0].Action, "newest first")

	uid1 := uint(1)
	byUser, err := List(db, Filters{UserID: &uid1})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	view := models.ActionView
	rid1 := uint(10)
	// filters are conjunctive
	both, err := List(db, Filters{UserID: &uid1, Action: &view, ResourceID: &rid1})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "A", both[0].UserName)

	from := time.Date(2026, 8, 1, 13, 30, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC)
	ranged, err := List(db, Filters{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "B", ranged[0].UserName)
}

func TestClearLeavesOtherTables(t *testing.T) {
	db := testDB(t)
	seedLogs(t, db)
	require.NoError(t, db.Create(&models.User{
		Name: "U", Email: "u@example.com", HashedPassword: "x",
		Role: models.RoleUser, Tier: models.Tier5,
	}).Error)
	require.NoError(t, db.Create(&models.Resource{Title: "R", URL: "https://r", Category: "c"}).Error)

	require.NoError(t, Clear(db))

	var logs, users, resources int64
	db.Model(&models.AccessLog{}).Count(&logs)
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Resource{}).Count(&resources)
	assert.Zero(t, logs)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, resources)
}
