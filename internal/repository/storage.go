package repository

import (
	"DealScout-Backend/internal/domain"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClickNotFound   = errors.New("click event not found")
	ErrRoleNotFound    = errors.New("user role not found")
	ErrSettingNotFound = errors.New("setting not found")
)

// ClickStore persists click events. SetConversion must apply the
// transition atomically so converted and converted_at never disagree.
type ClickStore interface {
	SaveClick(ctx context.Context, click *domain.ClickEvent) error
	GetClick(ctx context.Context, id uuid.UUID) (*domain.ClickEvent, error)
	// SetConversion flips the flag only when it differs from the target and
	// reports whether a transition happened. at is used as converted_at when
	// converting; it is raised to clicked_at if earlier.
	SetConversion(ctx context.Context, id uuid.UUID, converted bool, at time.Time) (*domain.ClickEvent, bool, error)
	UpdateClickNotes(ctx context.Context, id uuid.UUID, notes *string) (*domain.ClickEvent, error)
	// ListClicks returns events ordered by clicked_at desc, at most filter.Limit.
	ListClicks(ctx context.Context, filter domain.ClickFilter) ([]*domain.ClickEvent, error)
	// AggregateClicks counts clicks and conversions per platform since the given time.
	AggregateClicks(ctx context.Context, since time.Time) ([]domain.PlatformStats, error)
}

type SettingsStore interface {
	ListSettings(ctx context.Context) ([]*domain.SiteSetting, error)
	UpsertSettings(ctx context.Context, settings map[string]*string) error
}

type RoleStore interface {
	GetUserRole(ctx context.Context, userID string) (*domain.UserRole, error)
	ListUserRoles(ctx context.Context) ([]*domain.UserRole, error)
	SetUserRole(ctx context.Context, userID string, role domain.Role) (*domain.UserRole, error)
	DeleteUserRole(ctx context.Context, userID string) error
}

type ActivityStore interface {
	LogActivity(ctx context.Context, entry *domain.ActivityEntry) error
	ListActivity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
}

type Storage interface {
	ClickStore
	SettingsStore
	RoleStore
	ActivityStore

	Ping(ctx context.Context) error
}
