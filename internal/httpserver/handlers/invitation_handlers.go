package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/models"
	"resourcehub/internal/services/invite"
)

func ListInvitations(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invs, err := invite.List(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, invs)
	}
}

func CreateInvitation(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email         string      `json:"email"`
			InitialTier   models.Tier `json:"initial_tier"`
			Note          string      `json:"note"`
			ExpiresInDays int         `json:"expires_in_days"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		actor := auth.FromContext(r.Context())
		inv, err := invite.Create(db, actor, invite.CreateInput{
			Email:         req.Email,
			InitialTier:   req.InitialTier,
			Note:          req.Note,
			ExpiresInDays: req.ExpiresInDays,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("invitation created", "email", inv.Email, "tier", inv.InitialTier, "by", actor.UserID)
		respondJSON(w, inv)
	}
}

// VerifyInvitation is public: invitees check the token before
// committing to register.
func VerifyInvitation(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, err := invite.VerifyToken(db, chi.URLParam(r, "token"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{
			"email":           inv.Email,
			"initial_tier":    inv.InitialTier,
			"invited_by_name": inv.InvitedByName,
			"note":            inv.Note,
			"expires_at":      inv.ExpiresAt,
		})
	}
}

func AcceptInvitation(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		actor := auth.FromContext(r.Context())
		inv, err := invite.Accept(db, actor, req.Token)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("invitation accepted", "user", actor.UserID, "tier", inv.InitialTier)
		respondJSON(w, map[string]any{"tier": inv.InitialTier})
	}
}

func DeleteInvitation(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if err := invite.Delete(db, id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
