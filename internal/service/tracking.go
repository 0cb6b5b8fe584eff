package service

import (
	"DealScout-Backend/internal/analytics"
	"DealScout-Backend/internal/config"
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/metrics"
	"DealScout-Backend/internal/repository"
	"DealScout-Backend/pkg/useragent"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const UnknownIP = "unknown"

// EventPublisher receives every successfully recorded click.
type EventPublisher interface {
	Publish(click *domain.ClickEvent) bool
}

// DeviceParser derives device details from a User-Agent string.
type DeviceParser interface {
	Parse(userAgent string) *useragent.DeviceInfo
}

// ClickRequest is the storefront click payload.
type ClickRequest struct {
	ProductID     *string `json:"productId" validate:"omitempty,max=64"`
	ProductTitle  string  `json:"productTitle" validate:"required,max=500"`
	Platform      string  `json:"platform" validate:"required"`
	AffiliateLink *string `json:"affiliateLink" validate:"omitempty,max=2048"`
}

// RequestMeta is what the HTTP layer extracted from the click request.
type RequestMeta struct {
	IPAddress string
	UserAgent *string
	Referrer  *string
}

// ClickUpdate carries the admin-editable fields of a click event.
type ClickUpdate struct {
	Converted *bool   `json:"converted"`
	Notes     *string `json:"notes"`
}

// TrackingService records click events and serves the admin dashboard.
type TrackingService struct {
	clicks    repository.ClickStore
	activity  *ActivityService
	publisher EventPublisher
	devices   DeviceParser
	validate  *validator.Validate
	cfg       config.Tracking
	log       *zap.Logger
	now       func() time.Time
}

// NewTrackingService wires the tracking service. publisher and devices may be nil.
func NewTrackingService(
	clicks repository.ClickStore,
	activity *ActivityService,
	publisher EventPublisher,
	devices DeviceParser,
	cfg config.Tracking,
	log *zap.Logger,
) *TrackingService {
	if cfg.ListCap <= 0 {
		cfg.ListCap = 200
	}
	if cfg.RecentDefault <= 0 {
		cfg.RecentDefault = 20
	}
	return &TrackingService{
		clicks:    clicks,
		activity:  activity,
		publisher: publisher,
		devices:   devices,
		validate:  newValidator(),
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// RecordClick validates and persists one click. There is no retry and no
// deduplication: each call inserts at most one row.
func (s *TrackingService) RecordClick(ctx context.Context, req ClickRequest, meta RequestMeta) (*domain.ClickEvent, error) {
	req.ProductTitle = strings.TrimSpace(req.ProductTitle)
	req.Platform = strings.TrimSpace(req.Platform)
	if req.ProductTitle == "" || req.Platform == "" {
		return nil, &ValidationError{Message: "Product title and platform are required"}
	}
	if err := s.validate.Struct(&req); err != nil {
		return nil, toValidationError(err)
	}

	ip := strings.TrimSpace(meta.IPAddress)
	if ip == "" {
		ip = UnknownIP
	}

	click := &domain.ClickEvent{
		ID:            uuid.New(),
		ProductID:     nonEmpty(req.ProductID),
		ProductTitle:  req.ProductTitle,
		Platform:      domain.NormalizePlatform(req.Platform),
		AffiliateLink: nonEmpty(req.AffiliateLink),
		ClickedAt:     s.now().UTC(),
		IPAddress:     &ip,
		UserAgent:     nonEmpty(meta.UserAgent),
		Referrer:      nonEmpty(meta.Referrer),
	}

	if click.UserAgent != nil && s.devices != nil {
		if info := s.devices.Parse(*click.UserAgent); info != nil {
			click.DeviceType = &info.DeviceType
			click.Browser = &info.Browser
			click.OS = &info.OS
		}
	}

	if err := s.clicks.SaveClick(ctx, click); err != nil {
		metrics.ClickRecordFailures.Inc()
		s.log.Error("failed to track click",
			zap.String("platform", string(click.Platform)),
			zap.String("product_title", click.ProductTitle),
			zap.Error(err))
		return nil, fmt.Errorf("failed to track click: %w", err)
	}

	metrics.ClicksRecorded.WithLabelValues(string(click.Platform)).Inc()
	if s.publisher != nil {
		s.publisher.Publish(click)
	}

	s.log.Debug("click tracked",
		zap.String("click_id", click.ID.String()),
		zap.String("platform", string(click.Platform)))
	return click, nil
}

// SetConversion moves a click to the target conversion state. A click
// already in that state is returned unchanged.
func (s *TrackingService) SetConversion(ctx context.Context, actor string, id uuid.UUID, converted bool) (*domain.ClickEvent, error) {
	click, changed, err := s.clicks.SetConversion(ctx, id, converted, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrClickNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update conversion: %w", err)
	}
	if !changed {
		return click, nil
	}

	metrics.ConversionsChanged.WithLabelValues(string(click.Platform), metrics.ConversionDirection(converted)).Inc()

	action := domain.ActionClickUnconverted
	if converted {
		action = domain.ActionClickConverted
	}
	s.activity.Record(ctx, actor, action, domain.EntityClickEvent, id.String(), map[string]any{
		"product_title": click.ProductTitle,
		"platform":      click.Platform,
	})

	s.log.Info("conversion updated",
		zap.String("click_id", id.String()),
		zap.Bool("converted", converted),
		zap.String("actor", actor))
	return click, nil
}

// UpdateNotes replaces the admin notes. An empty string clears them.
func (s *TrackingService) UpdateNotes(ctx context.Context, actor string, id uuid.UUID, notes string) (*domain.ClickEvent, error) {
	if len(notes) > 5000 {
		return nil, &ValidationError{Field: "notes", Message: "notes must be at most 5000 characters"}
	}

	var value *string
	if strings.TrimSpace(notes) != "" {
		value = &notes
	}

	click, err := s.clicks.UpdateClickNotes(ctx, id, value)
	if err != nil {
		if errors.Is(err, repository.ErrClickNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}

	s.activity.Record(ctx, actor, domain.ActionClickNotes, domain.EntityClickEvent, id.String(), map[string]any{
		"cleared": value == nil,
	})
	return click, nil
}

// UpdateClick applies a PATCH of converted and/or notes.
func (s *TrackingService) UpdateClick(ctx context.Context, actor string, id uuid.UUID, upd ClickUpdate) (*domain.ClickEvent, error) {
	if upd.Converted == nil && upd.Notes == nil {
		return nil, &ValidationError{Message: "converted or notes is required"}
	}

	var (
		click *domain.ClickEvent
		err   error
	)
	if upd.Notes != nil {
		if click, err = s.UpdateNotes(ctx, actor, id, *upd.Notes); err != nil {
			return nil, err
		}
	}
	if upd.Converted != nil {
		if click, err = s.SetConversion(ctx, actor, id, *upd.Converted); err != nil {
			return nil, err
		}
	}
	return click, nil
}

// Recent returns the newest n clicks. n <= 0 uses the default; n is capped.
func (s *TrackingService) Recent(ctx context.Context, n int) ([]*domain.ClickEvent, error) {
	if n <= 0 {
		n = s.cfg.RecentDefault
	}
	return s.List(ctx, domain.ClickFilter{Limit: n})
}

// List returns filtered clicks ordered by clicked_at desc, never more than the cap.
func (s *TrackingService) List(ctx context.Context, filter domain.ClickFilter) ([]*domain.ClickEvent, error) {
	if filter.Limit <= 0 || filter.Limit > s.cfg.ListCap {
		filter.Limit = s.cfg.ListCap
	}
	if filter.Status == "" {
		filter.Status = domain.ConversionAll
	}

	clicks, err := s.clicks.ListClicks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}
	return clicks, nil
}

// Summary computes totals over the same capped set List would return.
func (s *TrackingService) Summary(ctx context.Context, filter domain.ClickFilter) (analytics.Summary, error) {
	clicks, err := s.List(ctx, filter)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(clicks), nil
}

// Aggregate counts clicks per platform since the given time, in storage.
func (s *TrackingService) Aggregate(ctx context.Context, since time.Time) (analytics.Summary, error) {
	stats, err := s.clicks.AggregateClicks(ctx, since)
	if err != nil {
		return analytics.Summary{}, fmt.Errorf("failed to aggregate clicks: %w", err)
	}
	return analytics.SummarizeStats(stats), nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
