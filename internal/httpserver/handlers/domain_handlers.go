package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/services/domains"
)

func ListAllowedDomains(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, err := domains.List(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, ds)
	}
}

func CreateAllowedDomain(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Domain      string `json:"domain"`
			Description string `json:"description"`
			IsActive    *bool  `json:"is_active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		d, err := domains.Create(db, auth.FromContext(r.Context()).UserID, domains.CreateInput{
			Domain:      req.Domain,
			Description: req.Description,
			IsActive:    active,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, d)
	}
}

func UpdateAllowedDomain(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req struct {
			IsActive    *bool   `json:"is_active"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		d, err := domains.Update(db, id, domains.UpdateInput{
			IsActive:    req.IsActive,
			Description: req.Description,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, d)
	}
}

func DeleteAllowedDomain(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if err := domains.Delete(db, id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
