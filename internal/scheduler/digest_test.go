package scheduler

import (
	"DealScout-Backend/internal/analytics"
	"DealScout-Backend/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAggregator is a mock implementation of Aggregator
type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Aggregate(ctx context.Context, since time.Time) (analytics.Summary, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(analytics.Summary), args.Error(1)
}

// MockRecorder is a mock implementation of ActivityRecorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, actor, action, entityType, entityID string, details any) {
	m.Called(ctx, actor, action, entityType, entityID, details)
}

func TestDigest_Run(t *testing.T) {
	now := time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC)

	t.Run("aggregates trailing window and records activity", func(t *testing.T) {
		agg := &MockAggregator{}
		rec := &MockRecorder{}
		summary := analytics.SummarizeStats([]domain.PlatformStats{
			{Platform: domain.PlatformAmazon, Clicks: 4, Conversions: 1},
		})
		agg.On("Aggregate", mock.Anything, now.Add(-24*time.Hour)).Return(summary, nil).Once()
		rec.On("Record", mock.Anything, "", domain.ActionDigestGenerated, domain.EntityDigest, "", mock.Anything).Once()

		d := NewDigest(agg, rec, 24*time.Hour, zap.NewNop())
		d.now = func() time.Time { return now }

		got, err := d.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.TotalClicks)
		assert.Equal(t, 25.0, got.ConversionRate)
		agg.AssertExpectations(t)
		rec.AssertExpectations(t)
	})

	t.Run("aggregation failure is not recorded", func(t *testing.T) {
		agg := &MockAggregator{}
		rec := &MockRecorder{}
		agg.On("Aggregate", mock.Anything, mock.Anything).Return(analytics.Summary{}, errors.New("db down"))

		d := NewDigest(agg, rec, time.Hour, zap.NewNop())
		_, err := d.Run(context.Background())
		require.Error(t, err)
		rec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDigest_StartStop(t *testing.T) {
	d := NewDigest(&MockAggregator{}, &MockRecorder{}, time.Hour, zap.NewNop())

	assert.Error(t, d.Start("not a schedule"))
	require.NoError(t, d.Start("0 6 * * *"))
	assert.Error(t, d.Start("0 6 * * *"))
	d.Stop()
	d.Stop()
}
