package http

import (
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// ActivityHandler обработчик журнала действий администраторов
type ActivityHandler struct {
	activity *service.ActivityService
	log      *zap.Logger
}

// NewActivityHandler создает новый обработчик журнала
func NewActivityHandler(activity *service.ActivityService, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activity: activity,
		log:      log,
	}
}

// ActivityResponse последние записи журнала
type ActivityResponse struct {
	Entries []*domain.ActivityEntry `json:"entries"`
}

// ListActivity возвращает последние записи журнала
//
//	@Summary	Admin activity log
//	@Tags		activity
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query		int	false	"Number of entries (default and cap 100)"
//	@Success	200		{object}	ActivityResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/admin/activity [get]
func (h *ActivityHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to load activity log")
		return
	}

	entries, err := h.activity.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to load activity log")
		return
	}
	if entries == nil {
		entries = []*domain.ActivityEntry{}
	}
	writeJSON(w, ActivityResponse{Entries: entries}, http.StatusOK)
}
