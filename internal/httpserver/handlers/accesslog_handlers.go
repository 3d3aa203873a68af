package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"resourcehub/internal/auth"
	"resourcehub/internal/models"
	"resourcehub/internal/services/audit"
)

func RecordAccessLog(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ResourceID    *uint         `json:"resource_id"`
			ResourceTitle string        `json:"resource_title"`
			ResourceURL   string        `json:"resource_url"`
			Action        models.Action `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		entry, err := audit.Record(db, auth.FromContext(r.Context()), audit.RecordInput{
			ResourceID:    req.ResourceID,
			ResourceTitle: req.ResourceTitle,
			ResourceURL:   req.ResourceURL,
			Action:        req.Action,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, entry)
	}
}

// ListAccessLogs reads filters from query parameters; all supplied
// filters apply together.
func ListAccessLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var f audit.Filters
		if s := q.Get("user_id"); s != "" {
			if v, err := strconv.ParseUint(s, 10, 64); err == nil {
				id := uint(v)
				f.UserID = &id
			}
		}
		if s := q.Get("resource_id"); s != "" {
			if v, err := strconv.ParseUint(s, 10, 64); err == nil {
				id := uint(v)
				f.ResourceID = &id
			}
		}
		if s := q.Get("action"); s != "" {
			a := models.Action(s)
			if !a.Valid() {
				http.Error(w, "invalid action", http.StatusBadRequest)
				return
			}
			f.Action = &a
		}
		if s := q.Get("from"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				f.From = &t
			}
		}
		if s := q.Get("to"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				f.To = &t
			}
		}
		logs, err := audit.List(db, f)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, logs)
	}
}

func ClearAccessLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := audit.Clear(db); err != nil {
			respondError(w, err)
			return
		}
		lg.Infow("access logs cleared", "by", auth.FromContext(r.Context()).UserID)
		respondJSON(w, map[string]any{"cleared": true})
	}
}
