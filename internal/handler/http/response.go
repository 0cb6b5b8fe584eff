package http

import (
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/repository"
	"DealScout-Backend/internal/service"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

// writeServiceError maps service and repository errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, verr.Message, http.StatusBadRequest)
	case errors.Is(err, repository.ErrClickNotFound):
		writeError(w, "Click event not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrRoleNotFound):
		writeError(w, "User role not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, "Insufficient permissions", http.StatusForbidden)
	default:
		log.Error(fallback, zap.Error(err))
		writeError(w, fallback, http.StatusInternalServerError)
	}
}

// parseClickFilter reads platform, status, q and limit query parameters.
func parseClickFilter(r *http.Request) (domain.ClickFilter, error) {
	q := r.URL.Query()
	var filter domain.ClickFilter

	if p := strings.TrimSpace(q.Get("platform")); p != "" && !strings.EqualFold(p, "all") {
		platform, ok := domain.ParsePlatform(p)
		if !ok {
			return filter, &service.ValidationError{Field: "platform", Message: "platform must be one of: all amazon temu ebay other"}
		}
		filter.Platform = &platform
	}

	status, ok := domain.ParseConversionStatus(q.Get("status"))
	if !ok {
		return filter, &service.ValidationError{Field: "status", Message: "status must be one of: all converted pending"}
	}
	filter.Status = status
	filter.Search = strings.TrimSpace(q.Get("q"))

	limit, err := parseLimit(r)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit
	return filter, nil
}

// parseLimit returns 0 when the limit parameter is absent.
func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &service.ValidationError{Field: "limit", Message: "limit must be a non-negative integer"}
	}
	return n, nil
}
