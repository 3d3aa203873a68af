package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/models"
	"resourcehub/internal/services/catalog"
)

func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return uint(id), err == nil
}

// labelsField accepts labels either as a JSON array or as a single
// comma-separated string.
type labelsField models.StringList

func (l *labelsField) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = nil
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func ListResources(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs, err := catalog.ListResources(db, auth.FromContext(r.Context()))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, rs)
	}
}

func ListAllResources(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs, err := catalog.ListAllResources(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, rs)
	}
}

type createResourceReq struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	Category     string       `json:"category"`
	Icon         string       `json:"icon"`
	Labels       labelsField  `json:"labels"`
	RequiredTier *models.Tier `json:"required_tier"`
	IsExternal   *bool        `json:"is_external"`
}

func CreateResource(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createResourceReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := catalog.CreateResource(db, auth.FromContext(r.Context()), catalog.CreateResourceInput{
			Title:        req.Title,
			Description:  req.Description,
			URL:          req.URL,
			Category:     req.Category,
			Icon:         req.Icon,
			Labels:       models.StringList(req.Labels),
			RequiredTier: req.RequiredTier,
			IsExternal:   req.IsExternal,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, res)
	}
}

// updateResourceReq distinguishes "required_tier": null (clear the
// gate) from the field being absent (leave it alone).
type updateResourceReq struct {
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	URL          *string      `json:"url"`
	Category     *string      `json:"category"`
	Icon         *string      `json:"icon"`
	Labels       *labelsField `json:"labels"`
	RequiredTier *models.Tier `json:"required_tier"`
	IsExternal   *bool        `json:"is_external"`
	IsFavorite   *bool        `json:"is_favorite"`

	tierSupplied bool
}

func (u *updateResourceReq) UnmarshalJSON(data []byte) error {
	type plain updateResourceReq
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	*u = updateResourceReq(p)
	_, u.tierSupplied = probe["required_tier"]
	return nil
}

func UpdateResource(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		var req updateResourceReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := catalog.UpdateResource(db, id, catalog.UpdateResourceInput{
			Title:             req.Title,
			Description:       req.Description,
			URL:               req.URL,
			Category:          req.Category,
			Icon:              req.Icon,
			Labels:            (*models.StringList)(req.Labels),
			RequiredTier:      req.RequiredTier,
			ClearRequiredTier: req.tierSupplied && req.RequiredTier == nil,
			IsExternal:        req.IsExternal,
			IsFavorite:        req.IsFavorite,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, res)
	}
}

func DeleteResource(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if err := catalog.DeleteResource(db, id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

func ReorderResources(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OrderedIDs []uint `json:"ordered_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := catalog.ReorderResources(db, req.OrderedIDs); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"reordered": true})
	}
}
