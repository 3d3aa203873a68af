package handlers

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/models"
)

// Setup is the one-time bootstrap: key-guarded, idempotent. It
// migrates the schema and seeds a single tier-1 admin so invitations
// can be issued. Run once, then rotate or unset SETUP_KEY.
func Setup(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := os.Getenv("SETUP_KEY")
		got := r.URL.Query().Get("key")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(got)) != 1 {
			http.Error(w, "invalid key", http.StatusUnauthorized)
			return
		}

		if err := db.AutoMigrate(models.All()...); err != nil {
			lg.Errorw("setup migrate failed", "error", err)
			http.Error(w, "migration failed", http.StatusInternalServerError)
			return
		}

		var count int64
		db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
		if count > 0 {
			respondJSON(w, map[string]any{"initialized": true, "seeded": false})
			return
		}

		email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
		if email == "" {
			email = "admin@resourcehub.local"
		}
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			http.Error(w, "ADMIN_PASSWORD must be set to seed the admin", http.StatusBadRequest)
			return
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		u := models.User{
			Name:           "Administrator",
			Email:          email,
			HashedPassword: hash,
			Role:           models.RoleAdmin,
			Tier:           models.Tier1,
			LastSignedIn:   time.Now(),
		}
		if err := db.Create(&u).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		lg.Infow("seeded admin", "email", email)
		respondJSON(w, map[string]any{"initialized": true, "seeded": true, "email": email})
	}
}
