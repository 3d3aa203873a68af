package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/models"
	"resourcehub/internal/services/catalog"
)

func ListCategories(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := catalog.ListCategories(db, auth.FromContext(r.Context()))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, cs)
	}
}

func CreateCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID           string       `json:"id"`
			Name         string       `json:"name"`
			Icon         string       `json:"icon"`
			Color        string       `json:"color"`
			SortOrder    int          `json:"sort_order"`
			RequiredTier *models.Tier `json:"required_tier"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := catalog.CreateCategory(db, catalog.CreateCategoryInput{
			ID:           req.ID,
			Name:         req.Name,
			Icon:         req.Icon,
			Color:        req.Color,
			SortOrder:    req.SortOrder,
			RequiredTier: req.RequiredTier,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, c)
	}
}

type updateCategoryReq struct {
	Name         *string      `json:"name"`
	Icon         *string      `json:"icon"`
	Color        *string      `json:"color"`
	SortOrder    *int         `json:"sort_order"`
	RequiredTier *models.Tier `json:"required_tier"`

	tierSupplied bool
}

func (u *updateCategoryReq) UnmarshalJSON(data []byte) error {
	type plain updateCategoryReq
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	*u = updateCategoryReq(p)
	_, u.tierSupplied = probe["required_tier"]
	return nil
}

func UpdateCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateCategoryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := catalog.UpdateCategory(db, id, catalog.UpdateCategoryInput{
			Name:              req.Name,
			Icon:              req.Icon,
			Color:             req.Color,
			SortOrder:         req.SortOrder,
			RequiredTier:      req.RequiredTier,
			ClearRequiredTier: req.tierSupplied && req.RequiredTier == nil,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, c)
	}
}

func DeleteCategory(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := catalog.DeleteCategory(db, chi.URLParam(r, "id")); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
