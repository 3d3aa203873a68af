package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/models"
	"resourcehub/internal/services/users"
)

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		us, err := users.List(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, us)
	}
}

func UpdateUserTier(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			Tier models.Tier `json:"tier"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u, err := users.UpdateTier(db, id, req.Tier)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("tier updated", "user", u.ID, "tier", u.Tier)
		respondJSON(w, u)
	}
}

func UpdateUserProfile(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			Name     *string `json:"name"`
			Email    *string `json:"email"`
			Password *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u, err := users.UpdateProfile(db, id, users.UpdateProfileInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, u)
	}
}
