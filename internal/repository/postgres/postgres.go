package postgres

import (
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStorage реализует интерфейс Storage для PostgreSQL
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр PostgreSQL storage
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// Ping проверяет доступность базы данных
func (s *PostgresStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// --- Click Methods ---

// SaveClick сохраняет событие клика
func (s *PostgresStorage) SaveClick(ctx context.Context, click *domain.ClickEvent) error {
	if click.ID == uuid.Nil {
		click.ID = uuid.New()
	}
	if click.ClickedAt.IsZero() {
		click.ClickedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(click).Error; err != nil {
		s.log.Error("failed to save click event",
			zap.String("platform", string(click.Platform)),
			zap.Error(err))
		return fmt.Errorf("failed to save click event: %w", err)
	}

	return nil
}

// GetClick получает событие клика по ID
func (s *PostgresStorage) GetClick(ctx context.Context, id uuid.UUID) (*domain.ClickEvent, error) {
	var click domain.ClickEvent

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&click).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrClickNotFound
	}
	if err != nil {
		s.log.Error("failed to get click event", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get click event: %w", err)
	}

	return &click, nil
}

// SetConversion переключает флаг конверсии одним условным UPDATE
func (s *PostgresStorage) SetConversion(ctx context.Context, id uuid.UUID, converted bool, at time.Time) (*domain.ClickEvent, bool, error) {
	var convertedAt any
	if converted {
		convertedAt = gorm.Expr("GREATEST(?::timestamptz, clicked_at)", at)
	}

	result := s.db.WithContext(ctx).
		Model(&domain.ClickEvent{}).
		Where("id = ? AND converted = ?", id, !converted).
		Updates(map[string]any{
			"converted":    converted,
			"converted_at": convertedAt,
		})
	if result.Error != nil {
		s.log.Error("failed to update conversion",
			zap.String("id", id.String()),
			zap.Bool("converted", converted),
			zap.Error(result.Error))
		return nil, false, fmt.Errorf("failed to update conversion: %w", result.Error)
	}

	// Если ни одна строка не изменилась, клик либо отсутствует, либо уже в нужном состоянии
	click, err := s.GetClick(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return click, result.RowsAffected > 0, nil
}

// UpdateClickNotes обновляет заметки к клику
func (s *PostgresStorage) UpdateClickNotes(ctx context.Context, id uuid.UUID, notes *string) (*domain.ClickEvent, error) {
	result := s.db.WithContext(ctx).
		Model(&domain.ClickEvent{}).
		Where("id = ?", id).
		Update("notes", notes)
	if result.Error != nil {
		s.log.Error("failed to update click notes", zap.String("id", id.String()), zap.Error(result.Error))
		return nil, fmt.Errorf("failed to update click notes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrClickNotFound
	}

	return s.GetClick(ctx, id)
}

// ListClicks возвращает отфильтрованный список кликов, новые первыми
func (s *PostgresStorage) ListClicks(ctx context.Context, filter domain.ClickFilter) ([]*domain.ClickEvent, error) {
	query := s.db.WithContext(ctx).Model(&domain.ClickEvent{})

	if filter.Platform != nil {
		query = query.Where("platform = ?", string(*filter.Platform))
	}
	switch filter.Status {
	case domain.ConversionConverted:
		query = query.Where("converted = ?", true)
	case domain.ConversionPending:
		query = query.Where("converted = ?", false)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query = query.Where("(product_title ILIKE ? OR platform ILIKE ?)", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var clicks []*domain.ClickEvent
	if err := query.Order("clicked_at DESC").Find(&clicks).Error; err != nil {
		s.log.Error("failed to list click events", zap.Error(err))
		return nil, fmt.Errorf("failed to list click events: %w", err)
	}

	return clicks, nil
}

// AggregateClicks считает клики и конверсии по платформам через GROUP BY
func (s *PostgresStorage) AggregateClicks(ctx context.Context, since time.Time) ([]domain.PlatformStats, error) {
	var stats []domain.PlatformStats

	err := s.db.WithContext(ctx).
		Model(&domain.ClickEvent{}).
		Select("platform, count(*) AS clicks, COALESCE(SUM(CASE WHEN converted THEN 1 ELSE 0 END), 0) AS conversions").
		Where("clicked_at >= ?", since).
		Group("platform").
		Order("platform").
		Scan(&stats).Error
	if err != nil {
		s.log.Error("failed to aggregate click events", zap.Time("since", since), zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate click events: %w", err)
	}

	return stats, nil
}

// --- Settings Methods ---

// ListSettings возвращает все настройки сайта
func (s *PostgresStorage) ListSettings(ctx context.Context) ([]*domain.SiteSetting, error) {
	var settings []*domain.SiteSetting
	if err := s.db.WithContext(ctx).Order("key").Find(&settings).Error; err != nil {
		s.log.Error("failed to list settings", zap.Error(err))
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// UpsertSettings вставляет или обновляет настройки по ключу
func (s *PostgresStorage) UpsertSettings(ctx context.Context, settings map[string]*string) error {
	if len(settings) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]domain.SiteSetting, 0, len(settings))
	for key, value := range settings {
		rows = append(rows, domain.SiteSetting{Key: key, Value: value, UpdatedAt: now})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		s.log.Error("failed to upsert settings", zap.Int("count", len(rows)), zap.Error(err))
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	return nil
}

// --- Role Methods ---

// GetUserRole получает роль пользователя
func (s *PostgresStorage) GetUserRole(ctx context.Context, userID string) (*domain.UserRole, error) {
	var role domain.UserRole

	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrRoleNotFound
	}
	if err != nil {
		s.log.Error("failed to get user role", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get user role: %w", err)
	}

	return &role, nil
}

// ListUserRoles возвращает все назначенные роли
func (s *PostgresStorage) ListUserRoles(ctx context.Context) ([]*domain.UserRole, error) {
	var roles []*domain.UserRole
	if err := s.db.WithContext(ctx).Order("created_at").Find(&roles).Error; err != nil {
		s.log.Error("failed to list user roles", zap.Error(err))
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}
	return roles, nil
}

// SetUserRole назначает или меняет роль пользователя
func (s *PostgresStorage) SetUserRole(ctx context.Context, userID string, role domain.Role) (*domain.UserRole, error) {
	row := domain.UserRole{UserID: userID, Role: role}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		s.log.Error("failed to set user role",
			zap.String("user_id", userID),
			zap.String("role", string(role)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to set user role: %w", err)
	}

	s.log.Info("user role assigned", zap.String("user_id", userID), zap.String("role", string(role)))
	return s.GetUserRole(ctx, userID)
}

// DeleteUserRole снимает роль с пользователя
func (s *PostgresStorage) DeleteUserRole(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.UserRole{})
	if result.Error != nil {
		s.log.Error("failed to delete user role", zap.String("user_id", userID), zap.Error(result.Error))
		return fmt.Errorf("failed to delete user role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleNotFound
	}

	s.log.Info("user role revoked", zap.String("user_id", userID))
	return nil
}

// --- Activity Methods ---

// LogActivity добавляет запись в журнал действий
func (s *PostgresStorage) LogActivity(ctx context.Context, entry *domain.ActivityEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		s.log.Error("failed to log activity", zap.String("action", entry.Action), zap.Error(err))
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// ListActivity возвращает последние записи журнала
func (s *PostgresStorage) ListActivity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []*domain.ActivityEntry
	if err := query.Find(&entries).Error; err != nil {
		s.log.Error("failed to list activity", zap.Error(err))
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

// --- Helper Methods ---

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
