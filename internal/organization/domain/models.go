package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Organization struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	AddressLine1 string       `json:"address_line1,omitempty"`
	OwnerID      snowflake.ID `gorm:"not null;index" json:"owner_id"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateOrganizationRequest struct {
	Name    string
	Address string
	OwnerID snowflake.ID
}

type Service interface {
	// Create persists the organization and links the owner to it in one
	// atomic unit; a user owns at most one organization.
	Create(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Organization, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidOwner = errors.New("invalid_owner")
	ErrNotFound     = errors.New("not_found")
)
