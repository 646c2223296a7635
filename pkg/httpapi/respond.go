package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/you/storefront/pkg/service"
)

const (
	defaultPage  = 1
	defaultCount = 10
	maxCount     = 100
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors onto the HTTP taxonomy: typed
// not-found rejections become 404, anything else is a store failure.
func writeServiceError(w http.ResponseWriter, err error) {
	if service.IsNotFound(err) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// parseListParams reads the page/count pagination parameters with the
// documented defaults and bounds (page >= 1, count 1-100).
func parseListParams(r *http.Request) (page, count int, err error) {
	page, count = defaultPage, defaultCount

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil || count < 1 || count > maxCount {
			return 0, 0, fmt.Errorf("count must be between 1 and %d", maxCount)
		}
	}
	return page, count, nil
}
