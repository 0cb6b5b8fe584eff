package analytics

import (
	"DealScout-Backend/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PlatformSummary is the click/conversion breakdown for one platform.
type PlatformSummary struct {
	Platform       domain.Platform `json:"platform"`
	Clicks         int64           `json:"clicks"`
	Conversions    int64           `json:"conversions"`
	ConversionRate float64         `json:"conversion_rate"`
}

// Summary is the dashboard view of a set of click events.
type Summary struct {
	TotalClicks      int64             `json:"total_clicks"`
	TotalConversions int64             `json:"total_conversions"`
	ConversionRate   float64           `json:"conversion_rate"`
	ByPlatform       []PlatformSummary `json:"by_platform"`
}

// ConversionRate returns conversions/clicks*100 rounded half away from zero
// to one decimal place, or 0 when there are no clicks.
func ConversionRate(conversions, clicks int64) float64 {
	if clicks <= 0 {
		return 0
	}
	return decimal.NewFromInt(conversions).
		Mul(hundred).
		Div(decimal.NewFromInt(clicks)).
		Round(1).
		InexactFloat64()
}

// Summarize computes totals over an already filtered set of events.
func Summarize(clicks []*domain.ClickEvent) Summary {
	counts := make(map[domain.Platform]*domain.PlatformStats, len(domain.Platforms))
	stats := make([]domain.PlatformStats, 0, len(domain.Platforms))
	for _, e := range clicks {
		ps, ok := counts[e.Platform]
		if !ok {
			ps = &domain.PlatformStats{Platform: e.Platform}
			counts[e.Platform] = ps
		}
		ps.Clicks++
		if e.Converted {
			ps.Conversions++
		}
	}
	for _, ps := range counts {
		stats = append(stats, *ps)
	}
	return SummarizeStats(stats)
}

// SummarizeStats folds per-platform counts into a Summary. Every known
// platform is present in ByPlatform, in display order.
func SummarizeStats(stats []domain.PlatformStats) Summary {
	byPlatform := make(map[domain.Platform]domain.PlatformStats, len(stats))
	for _, ps := range stats {
		acc := byPlatform[ps.Platform]
		acc.Platform = ps.Platform
		acc.Clicks += ps.Clicks
		acc.Conversions += ps.Conversions
		byPlatform[ps.Platform] = acc
	}

	var s Summary
	s.ByPlatform = make([]PlatformSummary, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		ps := byPlatform[p]
		s.TotalClicks += ps.Clicks
		s.TotalConversions += ps.Conversions
		s.ByPlatform = append(s.ByPlatform, PlatformSummary{
			Platform:       p,
			Clicks:         ps.Clicks,
			Conversions:    ps.Conversions,
			ConversionRate: ConversionRate(ps.Conversions, ps.Clicks),
		})
	}
	s.ConversionRate = ConversionRate(s.TotalConversions, s.TotalClicks)
	return s
}
