package http

import (
	"DealScout-Backend/internal/repository"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// StatsProvider отдает статистику фоновых компонентов
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// HealthHandler обработчик health checks
type HealthHandler struct {
	storage   repository.Storage
	processor StatsProvider
	version   string
	log       *zap.Logger
}

// NewHealthHandler создает новый health handler. processor может быть nil
func NewHealthHandler(storage repository.Storage, processor StatsProvider, version string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		storage:   storage,
		processor: processor,
		version:   version,
		log:       log,
	}
}

// HealthResponse структура ответа health check
type HealthResponse struct {
	Status         string                 `json:"status"`
	Timestamp      time.Time              `json:"timestamp"`
	Version        string                 `json:"version"`
	DatabaseStatus string                 `json:"database_status"`
	Uptime         string                 `json:"uptime,omitempty"`
	Feed           map[string]interface{} `json:"feed,omitempty"`
}

var startTime = time.Now()

// Health основной health check endpoint
//
//	@Summary	Liveness and database health
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, dbStatus, statusCode := "healthy", "healthy", http.StatusOK
	if err := h.storage.Ping(ctx); err != nil {
		h.log.Error("database health check failed", zap.Error(err))
		status, dbStatus, statusCode = "unhealthy", "unhealthy", http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:         status,
		Timestamp:      time.Now(),
		Version:        h.version,
		DatabaseStatus: dbStatus,
		Uptime:         time.Since(startTime).String(),
	}
	if h.processor != nil {
		response.Feed = h.processor.GetStats()
	}

	writeJSON(w, response, statusCode)
}

// Ready readiness probe endpoint
//
//	@Summary	Readiness probe
//	@Tags		health
//	@Produce	json
//	@Success	200
//	@Router		/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now(),
	}, http.StatusOK)
}
