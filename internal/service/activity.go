package service

import (
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ActivityService writes and reads the admin audit trail.
type ActivityService struct {
	store repository.ActivityStore
	cap   int
	log   *zap.Logger
	now   func() time.Time
}

func NewActivityService(store repository.ActivityStore, listCap int, log *zap.Logger) *ActivityService {
	if listCap <= 0 {
		listCap = 100
	}
	return &ActivityService{store: store, cap: listCap, log: log, now: time.Now}
}

// Record appends an entry. Failures are logged and swallowed so an audit
// problem never fails the admin action itself.
func (s *ActivityService) Record(ctx context.Context, actor, action, entityType, entityID string, details any) {
	entry := &domain.ActivityEntry{
		ID:         uuid.New(),
		UserID:     optional(actor),
		Action:     action,
		EntityType: entityType,
		EntityID:   optional(entityID),
		CreatedAt:  s.now().UTC(),
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.log.Warn("failed to encode activity details", zap.String("action", action), zap.Error(err))
		} else {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := s.store.LogActivity(ctx, entry); err != nil {
		s.log.Error("failed to record activity",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err))
	}
}

// List returns the newest entries first. limit is clamped to the configured cap.
func (s *ActivityService) List(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	if limit <= 0 || limit > s.cap {
		limit = s.cap
	}
	entries, err := s.store.ListActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
