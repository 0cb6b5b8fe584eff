package service

import (
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RoleService manages back-office roles and answers permission checks.
type RoleService struct {
	store    repository.RoleStore
	activity *ActivityService
	log      *zap.Logger
}

func NewRoleService(store repository.RoleStore, activity *ActivityService, log *zap.Logger) *RoleService {
	return &RoleService{store: store, activity: activity, log: log}
}

// Authorize returns the caller's role when it grants perm, domain.ErrForbidden otherwise.
func (s *RoleService) Authorize(ctx context.Context, userID string, perm domain.Permission) (domain.Role, error) {
	ur, err := s.store.GetUserRole(ctx, userID)
	if errors.Is(err, repository.ErrRoleNotFound) {
		return "", domain.ErrForbidden
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user role: %w", err)
	}
	if !ur.Role.Can(perm) {
		return ur.Role, domain.ErrForbidden
	}
	return ur.Role, nil
}

// Get returns userID's role record, domain.ErrForbidden when none is assigned.
func (s *RoleService) Get(ctx context.Context, userID string) (*domain.UserRole, error) {
	ur, err := s.store.GetUserRole(ctx, userID)
	if errors.Is(err, repository.ErrRoleNotFound) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user role: %w", err)
	}
	return ur, nil
}

func (s *RoleService) List(ctx context.Context) ([]*domain.UserRole, error) {
	roles, err := s.store.ListUserRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}
	return roles, nil
}

// Assign sets the single role of userID, replacing any previous one.
func (s *RoleService) Assign(ctx context.Context, actor, userID string, role domain.Role) (*domain.UserRole, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	if !role.Valid() {
		return nil, &ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", role)}
	}

	ur, err := s.store.SetUserRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	s.activity.Record(ctx, actor, domain.ActionRoleAssigned, domain.EntityUserRole, userID, map[string]any{
		"role": role,
	})
	return ur, nil
}

// Bootstrap выдает роль super_admin перечисленным пользователям.
// Пользователи, у которых она уже есть, пропускаются.
func (s *RoleService) Bootstrap(ctx context.Context, userIDs []string) error {
	for _, raw := range userIDs {
		userID := strings.TrimSpace(raw)
		if userID == "" {
			continue
		}

		ur, err := s.store.GetUserRole(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrRoleNotFound) {
			return fmt.Errorf("failed to load user role: %w", err)
		}
		if err == nil && ur.Role == domain.RoleSuperAdmin {
			continue
		}

		if _, err := s.Assign(ctx, "", userID, domain.RoleSuperAdmin); err != nil {
			return err
		}
		s.log.Info("bootstrap super admin assigned", zap.String("user_id", userID))
	}
	return nil
}

// Revoke removes userID's role. Admins cannot revoke their own role.
func (s *RoleService) Revoke(ctx context.Context, actor, userID string) error {
	if actor != "" && actor == userID {
		return &ValidationError{Field: "user_id", Message: "cannot revoke your own role"}
	}
	if err := s.store.DeleteUserRole(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return err
		}
		return fmt.Errorf("failed to revoke role: %w", err)
	}

	s.activity.Record(ctx, actor, domain.ActionRoleRevoked, domain.EntityUserRole, userID, nil)
	s.log.Info("user role revoked", zap.String("user_id", userID), zap.String("actor", actor))
	return nil
}
