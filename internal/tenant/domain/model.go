package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_tenants_slug"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Tenant) TableName() string { return "tenants" }
