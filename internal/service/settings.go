package service

import (
	"DealScout-Backend/internal/cache"
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	settingsCacheKey        = "site_settings"
	settingsCacheVersionKey = "site_settings:version"
)

const maxSettingKeyLen = 128

// SettingsService serves the storefront key/value settings through a read-through cache.
type SettingsService struct {
	store    repository.SettingsStore
	cache    cache.Cache
	ttl      time.Duration
	activity *ActivityService
	log      *zap.Logger
}

func NewSettingsService(store repository.SettingsStore, c cache.Cache, ttl time.Duration, activity *ActivityService, log *zap.Logger) *SettingsService {
	if c == nil {
		c = cache.Noop{}
	}
	return &SettingsService{store: store, cache: c, ttl: ttl, activity: activity, log: log}
}

// All returns every setting keyed by name. A null value means "unset".
func (s *SettingsService) All(ctx context.Context) (map[string]*string, error) {
	// версия читается до загрузки из базы: снимок, собранный до Update,
	// попадет под старый ключ и больше не будет прочитан
	key := s.cacheKey(ctx)
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("settings cache read failed", zap.Error(err))
	} else if ok {
		var cached map[string]*string
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		s.log.Warn("discarding malformed settings cache entry")
	}

	rows, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := make(map[string]*string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	if raw, err := json.Marshal(settings); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.log.Warn("settings cache write failed", zap.Error(err))
		}
	}
	return settings, nil
}

// cacheKey возвращает ключ снимка настроек для текущей версии кэша.
func (s *SettingsService) cacheKey(ctx context.Context) string {
	var version int64
	raw, ok, err := s.cache.Get(ctx, settingsCacheVersionKey)
	switch {
	case err != nil:
		s.log.Warn("settings cache version read failed", zap.Error(err))
	case ok:
		if v, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			version = v
		}
	}
	return fmt.Sprintf("%s:v%d", settingsCacheKey, version)
}

// Update upserts the given keys and moves the cache to a new version.
func (s *SettingsService) Update(ctx context.Context, actor string, settings map[string]*string) error {
	if len(settings) == 0 {
		return &ValidationError{Field: "settings", Message: "settings must not be empty"}
	}
	keys := make([]string, 0, len(settings))
	for key := range settings {
		if strings.TrimSpace(key) == "" || len(key) > maxSettingKeyLen {
			return &ValidationError{Field: "settings", Message: fmt.Sprintf("invalid setting key %q", key)}
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if err := s.store.UpsertSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if _, err := s.cache.Incr(ctx, settingsCacheVersionKey); err != nil {
		s.log.Warn("settings cache version bump failed", zap.Error(err))
		if err := s.cache.Delete(ctx, s.cacheKey(ctx)); err != nil {
			s.log.Warn("settings cache invalidation failed", zap.Error(err))
		}
	}

	s.activity.Record(ctx, actor, domain.ActionSettingsUpdated, domain.EntitySettings, "", map[string]any{
		"keys": keys,
	})
	s.log.Info("site settings updated", zap.Strings("keys", keys), zap.String("actor", actor))
	return nil
}
