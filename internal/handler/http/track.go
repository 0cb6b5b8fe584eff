package http

import (
	"DealScout-Backend/internal/service"
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TrackHandler обработчик кликов с витрины
type TrackHandler struct {
	tracking *service.TrackingService
	log      *zap.Logger
}

// NewTrackHandler создает новый обработчик кликов
func NewTrackHandler(tracking *service.TrackingService, log *zap.Logger) *TrackHandler {
	return &TrackHandler{
		tracking: tracking,
		log:      log,
	}
}

// TrackResponse ответ на успешную запись клика
type TrackResponse struct {
	Success bool `json:"success"`
}

// TrackClick записывает клик по партнерской ссылке
//
//	@Summary		Record an affiliate click
//	@Description	Public endpoint called by the storefront when a visitor follows an affiliate link
//	@Tags			tracking
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.ClickRequest	true	"Click payload"
//	@Success		200		{object}	TrackResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/track-click [post]
func (h *TrackHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req service.ClickRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Debug("invalid click payload", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	_, err := h.tracking.RecordClick(r.Context(), req, extractClientMeta(r))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, verr.Message, http.StatusBadRequest)
			return
		}
		// сервис уже залогировал ошибку хранилища
		writeError(w, "Failed to track click", http.StatusInternalServerError)
		return
	}

	writeJSON(w, TrackResponse{Success: true}, http.StatusOK)
}

// extractClientMeta извлекает IP, User-Agent и Referer из запроса
func extractClientMeta(r *http.Request) service.RequestMeta {
	meta := service.RequestMeta{IPAddress: extractIPAddress(r)}
	if ua := r.Header.Get("User-Agent"); ua != "" {
		meta.UserAgent = &ua
	}
	if ref := r.Header.Get("Referer"); ref != "" {
		meta.Referrer = &ref
	}
	return meta
}

// extractIPAddress: первый адрес из X-Forwarded-For, затем CF-Connecting-IP.
// Значения, которые не являются IP адресом, пропускаются.
func extractIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip, ok := parseIP(strings.Split(xff, ",")[0]); ok {
			return ip
		}
	}
	if ip, ok := parseIP(r.Header.Get("CF-Connecting-IP")); ok {
		return ip
	}
	return service.UnknownIP
}

// parseIP принимает "ip" или "ip:port" и возвращает нормализованный адрес
func parseIP(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String(), true
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		if ip := net.ParseIP(host); ip != nil {
			return ip.String(), true
		}
	}
	return "", false
}
