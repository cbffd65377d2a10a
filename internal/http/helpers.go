package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"pext/internal/analytics"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ownerID extracts the userId query parameter.
func ownerID(r *http.Request) (int64, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("userId"))
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// granularity maps the filter query parameter onto a time granularity,
// defaulting to month.
func granularity(r *http.Request) analytics.Granularity {
	switch strings.TrimSpace(r.URL.Query().Get("filter")) {
	case "day":
		return analytics.Day
	case "year":
		return analytics.Year
	default:
		return analytics.Month
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
