package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string     `json:"firstName" gorm:"type:text;not null"`
	LastName  string     `json:"lastName" gorm:"type:text;not null"`
	Email     string     `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	Password  string     `json:"-" gorm:"type:text;not null"`
	Role      string     `json:"role" gorm:"type:text;not null;default:user"`
	TenantID  *uuid.UUID `json:"tenantId,omitempty" gorm:"type:uuid;index"`
	IsActive  bool       `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }
