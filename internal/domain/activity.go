package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity actions recorded in the activity log.
const (
	ActionClickConverted   = "click.converted"
	ActionClickUnconverted = "click.unconverted"
	ActionClickNotes       = "click.notes"
	ActionSettingsUpdated  = "settings.updated"
	ActionRoleAssigned     = "role.assigned"
	ActionRoleRevoked      = "role.revoked"
	ActionDigestGenerated  = "digest.generated"
)

// Entity types referenced by activity entries.
const (
	EntityClickEvent = "click_event"
	EntitySettings   = "site_settings"
	EntityUserRole   = "user_role"
	EntityDigest     = "tracking_digest"
)

// ActivityEntry is an append-only audit record of an admin action.
type ActivityEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserID     *string        `gorm:"column:user_id;size:64;index" json:"user_id"`
	Action     string         `gorm:"column:action;size:64;not null" json:"action"`
	EntityType string         `gorm:"column:entity_type;size:64;not null" json:"entity_type"`
	EntityID   *string        `gorm:"column:entity_id;size:64" json:"entity_id"`
	Details    datatypes.JSON `gorm:"column:details;type:jsonb" json:"details"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null;index:idx_activity_log_created_at,sort:desc" json:"created_at"`
}

// TableName возвращает название таблицы для GORM
func (ActivityEntry) TableName() string {
	return "activity_log"
}
