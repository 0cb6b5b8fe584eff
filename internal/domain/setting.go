package domain

import "time"

// SiteSetting is a single key/value entry of the storefront configuration.
type SiteSetting struct {
	Key       string    `gorm:"primaryKey;column:key;size:128" json:"key"`
	Value     *string   `gorm:"column:value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (SiteSetting) TableName() string {
	return "site_settings"
}
