package http

import (
	"DealScout-Backend/internal/auth"
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/service"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RolesHandler обработчик ролей администраторов
type RolesHandler struct {
	roles *service.RoleService
	log   *zap.Logger
}

// NewRolesHandler создает новый обработчик ролей
func NewRolesHandler(roles *service.RoleService, log *zap.Logger) *RolesHandler {
	return &RolesHandler{
		roles: roles,
		log:   log,
	}
}

// RolesResponse список назначенных ролей
type RolesResponse struct {
	Roles []*domain.UserRole `json:"roles"`
}

// AssignRoleRequest запрос на назначение роли
type AssignRoleRequest struct {
	Role domain.Role `json:"role"`
}

// MeResponse текущий администратор и его права
type MeResponse struct {
	UserID      string              `json:"user_id"`
	Email       string              `json:"email,omitempty"`
	Role        domain.Role         `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
}

// Me возвращает роль текущего пользователя
//
//	@Summary	Current admin and permissions
//	@Tags		roles
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	MeResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Router		/api/admin/me [get]
func (h *RolesHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ur, err := h.roles.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to load user role")
		return
	}

	email, _ := auth.GetUserEmailFromContext(r.Context())
	writeJSON(w, MeResponse{
		UserID:      userID,
		Email:       email,
		Role:        ur.Role,
		Permissions: ur.Role.Permissions(),
	}, http.StatusOK)
}

// ListRoles возвращает все назначенные роли
//
//	@Summary	List admin roles
//	@Tags		roles
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	RolesResponse
//	@Router		/api/admin/roles [get]
func (h *RolesHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to list roles")
		return
	}
	if roles == nil {
		roles = []*domain.UserRole{}
	}
	writeJSON(w, RolesResponse{Roles: roles}, http.StatusOK)
}

// AssignRole назначает пользователю роль (заменяя предыдущую)
//
//	@Summary	Assign a role
//	@Tags		roles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userID	path		string				true	"User ID"
//	@Param		request	body		AssignRoleRequest	true	"Role"
//	@Success	200		{object}	domain.UserRole
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/admin/roles/{userID} [put]
func (h *RolesHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req AssignRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	actor, _ := auth.GetUserIDFromContext(r.Context())
	ur, err := h.roles.Assign(r.Context(), actor, mux.Vars(r)["userID"], req.Role)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to assign role")
		return
	}
	writeJSON(w, ur, http.StatusOK)
}

// RevokeRole снимает роль с пользователя
//
//	@Summary	Revoke a role
//	@Tags		roles
//	@Security	BearerAuth
//	@Param		userID	path	string	true	"User ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/admin/roles/{userID} [delete]
func (h *RolesHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.GetUserIDFromContext(r.Context())
	if err := h.roles.Revoke(r.Context(), actor, mux.Vars(r)["userID"]); err != nil {
		writeServiceError(w, h.log, err, "Failed to revoke role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
