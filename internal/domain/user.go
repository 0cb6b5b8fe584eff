package domain

import (
	"errors"
	"time"
)

// ErrForbidden is returned when the caller has no role granting the permission.
var ErrForbidden = errors.New("insufficient permissions")

// Role is the single back-office role assigned to a user.
type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleContentManager  Role = "content_manager"
	RoleAffiliateEditor Role = "affiliate_editor"
)

// Permission names an admin capability checked by the HTTP layer.
type Permission string

const (
	PermTrackingView   Permission = "tracking:view"
	PermTrackingUpdate Permission = "tracking:update"
	PermContentManage  Permission = "content:manage"
	PermSettingsManage Permission = "settings:manage"
	PermUsersManage    Permission = "users:manage"
	PermActivityView   Permission = "activity:view"
)

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermTrackingView, PermTrackingUpdate, PermContentManage,
		PermSettingsManage, PermUsersManage, PermActivityView,
	},
	RoleContentManager: {
		PermContentManage, PermTrackingView,
	},
	RoleAffiliateEditor: {
		PermTrackingView, PermTrackingUpdate, PermContentManage,
	},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role grants p.
func (r Role) Can(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// Permissions lists what the role grants.
func (r Role) Permissions() []Permission {
	return append([]Permission(nil), rolePermissions[r]...)
}

// UserRole привязывает пользователя провайдера аутентификации к роли
type UserRole struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:64" json:"user_id"`
	Role      Role      `gorm:"column:role;size:32;not null" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (UserRole) TableName() string {
	return "user_roles"
}
