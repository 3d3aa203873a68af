package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/services/settings"
)

func GetDomainRestriction(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enabled, err := settings.DomainRestrictionEnabled(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"enabled": enabled})
	}
}

func SetDomainRestriction(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		actor := auth.FromContext(r.Context())
		if _, err := settings.Upsert(db, settings.KeyDomainRestriction,
			strconv.FormatBool(req.Enabled), actor.UserID); err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("domain restriction toggled", "enabled", req.Enabled, "by", actor.UserID)
		respondJSON(w, map[string]any{"enabled": req.Enabled})
	}
}
