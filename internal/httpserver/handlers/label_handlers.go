package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/services/catalog"
)

func ListLabels(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls, err := catalog.ListLabels(db)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, ls)
	}
}

func CreateLabel(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		l, err := catalog.CreateLabel(db, req.Name)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, l)
	}
}

func DeleteLabel(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		if err := catalog.DeleteLabel(db, id); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
