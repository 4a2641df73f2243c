package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	ExternalID   string       `gorm:"not null;uniqueIndex" json:"external_id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash *string      `gorm:"column:password_hash" json:"-"`
	Role         string       `gorm:"not null;default:user" json:"role"`
	// OrgID is zero until the user creates or joins an organization.
	OrgID     snowflake.ID `gorm:"index" json:"organization_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleUser  = "user"
)
