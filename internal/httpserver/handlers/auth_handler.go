package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/models"
	"resourcehub/internal/services/invite"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var u models.User
		if err := db.First(&u, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err := auth.CheckPassword(u.HashedPassword, req.Password); err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		jti := uuid.NewString()
		sess := models.Session{
			JTI:       jti,
			UserID:    u.ID,
			ExpiresAt: time.Now().Add(auth.TokenTTL()),
			CreatedAt: time.Now(),
		}
		if err := db.Create(&sess).Error; err != nil {
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}
		_ = db.Model(&u).Update("last_signed_in", time.Now()).Error
		tok, err := auth.Sign(u, jti)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		lg.Infow("login", "user", u.ID)
		respondJSON(w, map[string]any{"token": tok})
	}
}

func Logout(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if _, jti, err := auth.Verify(h); err == nil && jti != "" {
			now := time.Now()
			_ = db.Model(&models.Session{}).Where("jti = ?", jti).
				Update("revoked_at", now).Error
		}
		respondJSON(w, map[string]any{"ok": true})
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		var u models.User
		if err := db.First(&u, "id = ?", claims.UserID).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]any{
			"id": u.ID, "name": u.Name, "email": u.Email,
			"role": u.Role, "tier": u.Tier,
		})
	}
}

type registerReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	InviteToken string `json:"invite_token"`
}

// Register is public but only reachable with a valid pending
// invitation; there is no open self-signup.
func Register(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u, err := invite.Register(db, invite.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Token:    req.InviteToken,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("registered via invitation", "user", u.ID, "tier", u.Tier)
		respondJSON(w, map[string]any{"id": u.ID, "email": u.Email, "tier": u.Tier})
	}
}

func ChangePassword(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Current string `json:"current_password"`
			New     string `json:"new_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.New) < 8 {
			http.Error(w, "password must be at least 8 characters", http.StatusBadRequest)
			return
		}
		claims := auth.FromContext(r.Context())
		var u models.User
		if err := db.First(&u, "id = ?", claims.UserID).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err := auth.CheckPassword(u.HashedPassword, req.Current); err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		hash, err := auth.HashPassword(req.New)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		if err := db.Model(&u).Update("hashed_password", hash).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{"updated": true})
	}
}
