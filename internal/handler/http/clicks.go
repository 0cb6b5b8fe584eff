package http

import (
	"DealScout-Backend/internal/analytics"
	"DealScout-Backend/internal/auth"
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/export"
	"DealScout-Backend/internal/service"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ClicksHandler обработчик админских запросов по кликам
type ClicksHandler struct {
	tracking *service.TrackingService
	log      *zap.Logger
	now      func() time.Time
}

// NewClicksHandler создает новый обработчик кликов для админки
func NewClicksHandler(tracking *service.TrackingService, log *zap.Logger) *ClicksHandler {
	return &ClicksHandler{
		tracking: tracking,
		log:      log,
		now:      time.Now,
	}
}

// ClicksResponse список событий клика
type ClicksResponse struct {
	Clicks []*domain.ClickEvent `json:"clicks"`
}

// ListClicks возвращает отфильтрованный список кликов
//
//	@Summary		List click events
//	@Tags			clicks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			platform	query		string	false	"all, amazon, temu, ebay, other"
//	@Param			status		query		string	false	"all, converted, pending"
//	@Param			q			query		string	false	"Search in product title and platform"
//	@Param			limit		query		int		false	"Maximum rows (capped)"
//	@Success		200			{object}	ClicksResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Router			/api/admin/clicks [get]
func (h *ClicksHandler) ListClicks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseClickFilter(r)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch click events")
		return
	}

	clicks, err := h.tracking.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch click events")
		return
	}
	writeJSON(w, ClicksResponse{Clicks: nonNilClicks(clicks)}, http.StatusOK)
}

// RecentClicks возвращает последние N кликов
//
//	@Summary	Most recent click events
//	@Tags		clicks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query		int	false	"Number of events (default 20)"
//	@Success	200		{object}	ClicksResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/admin/clicks/recent [get]
func (h *ClicksHandler) RecentClicks(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch click events")
		return
	}

	clicks, err := h.tracking.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to fetch click events")
		return
	}
	writeJSON(w, ClicksResponse{Clicks: nonNilClicks(clicks)}, http.StatusOK)
}

// Summary возвращает итоги и разбивку по платформам
//
//	@Summary	Click and conversion summary
//	@Tags		clicks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		platform	query		string	false	"all, amazon, temu, ebay, other"
//	@Param		status		query		string	false	"all, converted, pending"
//	@Param		q			query		string	false	"Search in product title and platform"
//	@Success	200			{object}	analytics.Summary
//	@Failure	400			{object}	ErrorResponse
//	@Router		/api/admin/clicks/summary [get]
func (h *ClicksHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseClickFilter(r)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to compute summary")
		return
	}

	summary, err := h.tracking.Summary(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to compute summary")
		return
	}
	writeJSON(w, summary, http.StatusOK)
}

// Export выгружает отфильтрованные клики в XLSX
//
//	@Summary	Export click events as XLSX
//	@Tags		clicks
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Security	BearerAuth
//	@Param		platform	query	string	false	"all, amazon, temu, ebay, other"
//	@Param		status		query	string	false	"all, converted, pending"
//	@Param		q			query	string	false	"Search in product title and platform"
//	@Success	200
//	@Failure	400	{object}	ErrorResponse
//	@Router		/api/admin/clicks/export [get]
func (h *ClicksHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseClickFilter(r)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to export click events")
		return
	}

	clicks, err := h.tracking.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to export click events")
		return
	}

	// итоги считаются по тем же строкам, что попадут в лист Clicks
	data, err := export.ClicksXLSX(clicks, analytics.Summarize(clicks))
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to export click events")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Warn("failed to write export", zap.Error(err))
	}
}

// UpdateClick отмечает конверсию и/или меняет заметки
//
//	@Summary	Update conversion state or notes
//	@Tags		clicks
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Click event ID"
//	@Param		request	body		service.ClickUpdate	true	"Fields to update"
//	@Success	200		{object}	domain.ClickEvent
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/admin/clicks/{id} [patch]
func (h *ClicksHandler) UpdateClick(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Invalid click event ID", http.StatusBadRequest)
		return
	}

	var upd service.ClickUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	actor, _ := auth.GetUserIDFromContext(r.Context())
	click, err := h.tracking.UpdateClick(r.Context(), actor, id, upd)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to update click event")
		return
	}
	writeJSON(w, click, http.StatusOK)
}

func nonNilClicks(clicks []*domain.ClickEvent) []*domain.ClickEvent {
	if clicks == nil {
		return []*domain.ClickEvent{}
	}
	return clicks
}
