package database

import (
	"DealScout-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate выполняет автоматические миграции для всех доменных моделей
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	models := []interface{}{
		&domain.ClickEvent{},
		&domain.SiteSetting{},
		&domain.UserRole{},
		&domain.ActivityEntry{},
	}

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Info("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	// converted_at заполнен тогда и только тогда, когда converted = true
	if err := db.Exec(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_click_events_conversion') THEN
			ALTER TABLE click_events ADD CONSTRAINT chk_click_events_conversion
				CHECK ((converted AND converted_at IS NOT NULL) OR (NOT converted AND converted_at IS NULL));
		END IF;
	END $$`).Error; err != nil {
		log.Error("failed to add conversion constraint", zap.Error(err))
		return fmt.Errorf("failed to add conversion constraint: %w", err)
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// DefaultSettings are the storefront keys the admin settings screen edits.
var DefaultSettings = []string{
	"site_name",
	"site_logo_url",
	"site_tagline",
	"footer_text",
	"contact_email",
	"contact_phone",
	"facebook_url",
	"twitter_url",
	"instagram_url",
	"affiliate_disclosure",
	"primary_color",
	"secondary_color",
}

// SeedData заполняет базу данных начальными данными.
// Существующие значения настроек не перезаписываются.
func SeedData(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database seeding")

	rows := make([]domain.SiteSetting, 0, len(DefaultSettings))
	for _, key := range DefaultSettings {
		rows = append(rows, domain.SiteSetting{Key: key})
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		log.Error("failed to seed site settings", zap.Error(result.Error))
		return fmt.Errorf("failed to seed site settings: %w", result.Error)
	}

	log.Info("database seeding completed successfully", zap.Int64("settings_created", result.RowsAffected))
	return nil
}
