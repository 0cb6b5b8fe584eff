package analytics

import (
	"DealScout-Backend/internal/domain"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu     sync.Mutex
	clicks []*domain.ClickEvent
}

func (s *recordingSink) Deliver(_ context.Context, click *domain.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks = append(s.clicks, click)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clicks)
}

func TestProcessor_DeliversToAllSinks(t *testing.T) {
	first, second := &recordingSink{}, &recordingSink{}
	p := NewProcessor(zap.NewNop(), DefaultConfig(), first, second)
	require.NoError(t, p.Start())

	for i := 0; i < 5; i++ {
		assert.True(t, p.Publish(&domain.ClickEvent{ID: uuid.New(), Platform: domain.PlatformAmazon}))
	}
	require.NoError(t, p.Stop())

	assert.Equal(t, 5, first.count())
	assert.Equal(t, 5, second.count())
	assert.Equal(t, int64(5), p.GetStats()["published"])
}

func TestProcessor_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	blocking := SinkFunc(func(ctx context.Context, _ *domain.ClickEvent) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})

	p := NewProcessor(zap.NewNop(), ProcessorConfig{
		WorkerCount:     1,
		BufferSize:      1,
		DeliveryTimeout: time.Second,
		ShutdownTimeout: 5 * time.Second,
	}, blocking)
	require.NoError(t, p.Start())

	accepted := 0
	for i := 0; i < 10; i++ {
		if p.Publish(&domain.ClickEvent{ID: uuid.New()}) {
			accepted++
		}
	}
	close(release)
	require.NoError(t, p.Stop())

	stats := p.GetStats()
	assert.LessOrEqual(t, accepted, 2)
	assert.Equal(t, int64(10-accepted), stats["dropped"])
}

func TestProcessor_SinkFailureIsNotRetried(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	failing := SinkFunc(func(context.Context, *domain.ClickEvent) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return errors.New("boom")
	})

	p := NewProcessor(zap.NewNop(), DefaultConfig(), failing)
	require.NoError(t, p.Start())
	p.Publish(&domain.ClickEvent{ID: uuid.New()})
	require.NoError(t, p.Stop())

	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(1), p.GetStats()["failed"])
}

func TestProcessor_Lifecycle(t *testing.T) {
	p := NewProcessor(zap.NewNop(), DefaultConfig())

	assert.False(t, p.Publish(&domain.ClickEvent{}), "publish before start is rejected")
	assert.Error(t, p.Stop())

	require.NoError(t, p.Start())
	assert.Error(t, p.Start())
	require.NoError(t, p.Stop())
	assert.False(t, p.Publish(&domain.ClickEvent{}))

	t.Run("restart after stop is rejected", func(t *testing.T) {
		assert.Error(t, p.Start())
		assert.NotPanics(t, func() {
			assert.False(t, p.Publish(&domain.ClickEvent{ID: uuid.New()}))
		})
		assert.Error(t, p.Stop())
	})
}
