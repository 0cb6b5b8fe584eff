package memory

import (
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStorage keeps everything in process memory. Used for local runs and tests.
type MemStorage struct {
	mu       sync.RWMutex
	clicks   map[uuid.UUID]*domain.ClickEvent
	settings map[string]*domain.SiteSetting
	roles    map[string]*domain.UserRole
	activity []*domain.ActivityEntry
	now      func() time.Time
}

func New() *MemStorage {
	return &MemStorage{
		clicks:   make(map[uuid.UUID]*domain.ClickEvent),
		settings: make(map[string]*domain.SiteSetting),
		roles:    make(map[string]*domain.UserRole),
		now:      time.Now,
	}
}

func (s *MemStorage) Ping(_ context.Context) error {
	return nil
}

// --- Click Methods ---

func (s *MemStorage) SaveClick(_ context.Context, click *domain.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if click.ID == uuid.Nil {
		click.ID = uuid.New()
	}
	if click.ClickedAt.IsZero() {
		click.ClickedAt = s.now().UTC()
	}
	c := *click
	s.clicks[c.ID] = &c
	return nil
}

func (s *MemStorage) GetClick(_ context.Context, id uuid.UUID) (*domain.ClickEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	click, ok := s.clicks[id]
	if !ok {
		return nil, repository.ErrClickNotFound
	}
	c := *click
	return &c, nil
}

func (s *MemStorage) SetConversion(_ context.Context, id uuid.UUID, converted bool, at time.Time) (*domain.ClickEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	click, ok := s.clicks[id]
	if !ok {
		return nil, false, repository.ErrClickNotFound
	}
	changed := click.Converted != converted
	if changed {
		click.Converted = converted
		if converted {
			if at.Before(click.ClickedAt) {
				at = click.ClickedAt
			}
			click.ConvertedAt = &at
		} else {
			click.ConvertedAt = nil
		}
	}
	c := *click
	return &c, changed, nil
}

func (s *MemStorage) UpdateClickNotes(_ context.Context, id uuid.UUID, notes *string) (*domain.ClickEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	click, ok := s.clicks[id]
	if !ok {
		return nil, repository.ErrClickNotFound
	}
	click.Notes = notes
	c := *click
	return &c, nil
}

func (s *MemStorage) ListClicks(_ context.Context, filter domain.ClickFilter) ([]*domain.ClickEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.ClickEvent, 0, len(s.clicks))
	for _, click := range s.clicks {
		if filter.Matches(click) {
			c := *click
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ClickedAt.After(result[j].ClickedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *MemStorage) AggregateClicks(_ context.Context, since time.Time) ([]domain.PlatformStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byPlatform := make(map[domain.Platform]*domain.PlatformStats)
	for _, click := range s.clicks {
		if click.ClickedAt.Before(since) {
			continue
		}
		ps, ok := byPlatform[click.Platform]
		if !ok {
			ps = &domain.PlatformStats{Platform: click.Platform}
			byPlatform[click.Platform] = ps
		}
		ps.Clicks++
		if click.Converted {
			ps.Conversions++
		}
	}
	stats := make([]domain.PlatformStats, 0, len(byPlatform))
	for _, ps := range byPlatform {
		stats = append(stats, *ps)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Platform < stats[j].Platform })
	return stats, nil
}

// --- Settings Methods ---

func (s *MemStorage) ListSettings(_ context.Context) ([]*domain.SiteSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.SiteSetting, 0, len(s.settings))
	for _, setting := range s.settings {
		st := *setting
		result = append(result, &st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (s *MemStorage) UpsertSettings(_ context.Context, settings map[string]*string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	for key, value := range settings {
		s.settings[key] = &domain.SiteSetting{Key: key, Value: value, UpdatedAt: now}
	}
	return nil
}

// --- Role Methods ---

func (s *MemStorage) GetUserRole(_ context.Context, userID string) (*domain.UserRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[userID]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	r := *role
	return &r, nil
}

func (s *MemStorage) ListUserRoles(_ context.Context) ([]*domain.UserRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.UserRole, 0, len(s.roles))
	for _, role := range s.roles {
		r := *role
		result = append(result, &r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (s *MemStorage) SetUserRole(_ context.Context, userID string, role domain.Role) (*domain.UserRole, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	existing, ok := s.roles[userID]
	if !ok {
		existing = &domain.UserRole{UserID: userID, CreatedAt: now}
		s.roles[userID] = existing
	}
	existing.Role = role
	existing.UpdatedAt = now
	r := *existing
	return &r, nil
}

func (s *MemStorage) DeleteUserRole(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[userID]; !ok {
		return repository.ErrRoleNotFound
	}
	delete(s.roles, userID)
	return nil
}

// --- Activity Methods ---

func (s *MemStorage) LogActivity(_ context.Context, entry *domain.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	e := *entry
	s.activity = append(s.activity, &e)
	return nil
}

func (s *MemStorage) ListActivity(_ context.Context, limit int) ([]*domain.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*domain.ActivityEntry, 0, len(s.activity))
	for i := len(s.activity) - 1; i >= 0; i-- {
		if limit > 0 && len(result) >= limit {
			break
		}
		e := *s.activity[i]
		result = append(result, &e)
	}
	return result, nil
}
