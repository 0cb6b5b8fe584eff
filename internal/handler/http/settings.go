package http

import (
	"DealScout-Backend/internal/auth"
	"DealScout-Backend/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// SettingsHandler обработчик настроек сайта
type SettingsHandler struct {
	settings *service.SettingsService
	log      *zap.Logger
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(settings *service.SettingsService, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		log:      log,
	}
}

// SettingsPayload тело запроса и ответа для настроек
type SettingsPayload struct {
	Settings map[string]*string `json:"settings"`
}

// GetSettings возвращает все настройки (публичный endpoint)
//
//	@Summary	Storefront settings
//	@Tags		settings
//	@Produce	json
//	@Success	200	{object}	SettingsPayload
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.All(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to load settings")
		return
	}
	writeJSON(w, SettingsPayload{Settings: settings}, http.StatusOK)
}

// UpdateSettings обновляет настройки (upsert)
//
//	@Summary	Upsert storefront settings
//	@Tags		settings
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		SettingsPayload	true	"Settings to upsert"
//	@Success	200		{object}	SettingsPayload
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/admin/settings [put]
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	actor, _ := auth.GetUserIDFromContext(r.Context())
	if err := h.settings.Update(r.Context(), actor, req.Settings); err != nil {
		writeServiceError(w, h.log, err, "Failed to save settings")
		return
	}

	settings, err := h.settings.All(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to load settings")
		return
	}
	writeJSON(w, SettingsPayload{Settings: settings}, http.StatusOK)
}
