package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
	"gorm.io/datatypes"
)

const StatusActive = "active"

type Customer struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID      `gorm:"not null;index" json:"organization_id"`
	Name          string            `gorm:"not null" json:"name"`
	ContactPerson *string           `json:"contact_person"`
	Email         *string           `json:"email"`
	Phone         *string           `json:"phone"`
	Address       *string           `json:"address"`
	Status        string            `gorm:"not null;default:active" json:"status"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateCustomerRequest struct {
	Name          string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

type UpdateCustomerRequest struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Status        *string
}

type ListCustomerRequest struct {
	pagination.Pagination
	Name   string
	Status string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Customer, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateCustomerRequest) (*Customer, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
)
