// Package scheduler runs periodic tracking jobs.
package scheduler

import (
	"DealScout-Backend/internal/analytics"
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/metrics"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const runTimeout = 2 * time.Minute

// Aggregator counts clicks per platform since a point in time.
type Aggregator interface {
	Aggregate(ctx context.Context, since time.Time) (analytics.Summary, error)
}

// ActivityRecorder writes audit entries.
type ActivityRecorder interface {
	Record(ctx context.Context, actor, action, entityType, entityID string, details any)
}

// Digest periodically summarizes recent clicks, exports the result as
// gauges and records it in the activity log.
type Digest struct {
	agg      Aggregator
	activity ActivityRecorder
	window   time.Duration
	log      *zap.Logger
	now      func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

func NewDigest(agg Aggregator, activity ActivityRecorder, window time.Duration, log *zap.Logger) *Digest {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Digest{agg: agg, activity: activity, window: window, log: log, now: time.Now}
}

// Run builds one digest over the trailing window.
func (d *Digest) Run(ctx context.Context) (analytics.Summary, error) {
	until := d.now().UTC()
	since := until.Add(-d.window)

	summary, err := d.agg.Aggregate(ctx, since)
	if err != nil {
		d.log.Error("tracking digest failed", zap.Error(err))
		return analytics.Summary{}, fmt.Errorf("failed to build digest: %w", err)
	}

	for _, ps := range summary.ByPlatform {
		metrics.DigestClicks.WithLabelValues(string(ps.Platform)).Set(float64(ps.Clicks))
		metrics.DigestConversionRate.WithLabelValues(string(ps.Platform)).Set(ps.ConversionRate)
	}

	d.activity.Record(ctx, "", domain.ActionDigestGenerated, domain.EntityDigest, "", map[string]any{
		"since":   since.Format(time.RFC3339),
		"until":   until.Format(time.RFC3339),
		"summary": summary,
	})

	d.log.Info("tracking digest",
		zap.Time("since", since),
		zap.Int64("clicks", summary.TotalClicks),
		zap.Int64("conversions", summary.TotalConversions),
		zap.Float64("conversion_rate", summary.ConversionRate))
	return summary, nil
}

// Start schedules Run with a standard five-field cron spec.
func (d *Digest) Start(spec string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cron != nil {
		return fmt.Errorf("digest scheduler already started")
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_, _ = d.Run(ctx)
	}); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}

	c.Start()
	d.cron = c
	d.log.Info("digest scheduler started", zap.String("schedule", spec), zap.Duration("window", d.window))
	return nil
}

// Stop prevents further runs and waits for a running job to finish.
func (d *Digest) Stop() {
	d.mu.Lock()
	c := d.cron
	d.cron = nil
	d.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	d.log.Info("digest scheduler stopped")
}
