package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Platform is the upstream marketplace an affiliate link belongs to.
type Platform string

const (
	PlatformAmazon Platform = "amazon"
	PlatformTemu   Platform = "temu"
	PlatformEbay   Platform = "ebay"
	PlatformOther  Platform = "other"
)

// Platforms lists every known platform in display order.
var Platforms = []Platform{PlatformAmazon, PlatformTemu, PlatformEbay, PlatformOther}

// ParsePlatform returns the platform matching s (case-insensitive).
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PlatformAmazon, PlatformTemu, PlatformEbay, PlatformOther:
		return p, true
	}
	return "", false
}

// NormalizePlatform maps unknown platform names to PlatformOther.
func NormalizePlatform(s string) Platform {
	if p, ok := ParsePlatform(s); ok {
		return p
	}
	return PlatformOther
}

// ClickEvent is a single activation of an affiliate link or banner.
// The product title is a snapshot taken at click time and is never
// re-read from the catalog.
type ClickEvent struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ProductID     *string    `gorm:"column:product_id;size:64;index" json:"product_id"`
	ProductTitle  string     `gorm:"column:product_title;type:text;not null" json:"product_title"`
	Platform      Platform   `gorm:"column:platform;size:16;not null;index" json:"platform"`
	AffiliateLink *string    `gorm:"column:affiliate_link;type:text" json:"affiliate_link"`
	ClickedAt     time.Time  `gorm:"column:clicked_at;not null;index:idx_click_events_clicked_at,sort:desc" json:"clicked_at"`
	IPAddress     *string    `gorm:"column:ip_address;type:text" json:"ip_address"`
	UserAgent     *string    `gorm:"column:user_agent;type:text" json:"user_agent"`
	Referrer      *string    `gorm:"column:referrer;type:text" json:"referrer"`
	DeviceType    *string    `gorm:"column:device_type;size:10" json:"device_type,omitempty"`
	Browser       *string    `gorm:"column:browser;type:text" json:"browser,omitempty"`
	OS            *string    `gorm:"column:os;type:text" json:"os,omitempty"`
	Converted     bool       `gorm:"column:converted;not null;default:false;index" json:"converted"`
	ConvertedAt   *time.Time `gorm:"column:converted_at" json:"converted_at"`
	Notes         *string    `gorm:"column:notes;type:text" json:"notes"`
}

// TableName возвращает название таблицы для GORM
func (ClickEvent) TableName() string {
	return "click_events"
}

// ConversionStatus filters click listings by conversion state.
type ConversionStatus string

const (
	ConversionAll       ConversionStatus = "all"
	ConversionConverted ConversionStatus = "converted"
	ConversionPending   ConversionStatus = "pending"
)

// ParseConversionStatus accepts "", "all", "converted" and "pending".
func ParseConversionStatus(s string) (ConversionStatus, bool) {
	switch ConversionStatus(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConversionAll:
		return ConversionAll, true
	case ConversionConverted:
		return ConversionConverted, true
	case ConversionPending:
		return ConversionPending, true
	}
	return "", false
}

// ClickFilter narrows a click listing. A zero Limit means "use the cap".
type ClickFilter struct {
	Platform *Platform
	Status   ConversionStatus
	Search   string
	Limit    int
}

// Matches reports whether e passes the platform, status and search filters.
// Limit is not considered.
func (f ClickFilter) Matches(e *ClickEvent) bool {
	if f.Platform != nil && e.Platform != *f.Platform {
		return false
	}
	switch f.Status {
	case ConversionConverted:
		if !e.Converted {
			return false
		}
	case ConversionPending:
		if e.Converted {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(e.ProductTitle), q) ||
			strings.Contains(string(e.Platform), q)
	}
	return true
}

// PlatformStats holds click and conversion counts for one platform.
type PlatformStats struct {
	Platform    Platform `gorm:"column:platform" json:"platform"`
	Clicks      int64    `gorm:"column:clicks" json:"clicks"`
	Conversions int64    `gorm:"column:conversions" json:"conversions"`
}
