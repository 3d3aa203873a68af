package handlers

import (
	"encoding/json"
	"net/http"

	"resourcehub/internal/errs"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

var statusByKind = map[errs.Kind]int{
	errs.Unauthorized: http.StatusUnauthorized,
	errs.Forbidden:    http.StatusForbidden,
	errs.NotFound:     http.StatusNotFound,
	errs.BadRequest:   http.StatusBadRequest,
	errs.Conflict:     http.StatusConflict,
}

// respondError renders a service failure with its taxonomy status.
// Errors without a category are internal.
func respondError(w http.ResponseWriter, err error) {
	status, ok := statusByKind[errs.KindOf(err)]
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Error(w, err.Error(), status)
}
