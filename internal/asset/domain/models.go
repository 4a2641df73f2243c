package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
)

const StatusActive = "active"

type Asset struct {
	ID           snowflake.ID     `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID     `gorm:"not null;index" json:"organization_id"`
	AssetCode    string           `gorm:"not null;uniqueIndex" json:"asset_code"`
	Name         string           `gorm:"not null" json:"name"`
	Location     *string          `json:"location"`
	PurchaseCost *decimal.Decimal `gorm:"type:numeric(18,2)" json:"purchase_cost"`
	CurrentValue *decimal.Decimal `gorm:"type:numeric(18,2)" json:"current_value"`
	Status       string           `gorm:"not null;default:active" json:"status"`
	CreatedAt    time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateAssetRequest struct {
	// AssetCode is generated when empty.
	AssetCode    string
	Name         string
	Location     *string
	PurchaseCost *decimal.Decimal
	CurrentValue *decimal.Decimal
}

type UpdateAssetRequest struct {
	Name         *string
	Location     *string
	PurchaseCost *decimal.Decimal
	CurrentValue *decimal.Decimal
	Status       *string
}

type ListAssetRequest struct {
	pagination.Pagination
	Name   string
	Status string
}

type ListAssetResponse struct {
	pagination.PageInfo
	Assets []Asset `json:"assets"`
}

type Service interface {
	Create(ctx context.Context, req CreateAssetRequest) (*Asset, error)
	List(ctx context.Context, req ListAssetRequest) (ListAssetResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Asset, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateAssetRequest) (*Asset, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
)
