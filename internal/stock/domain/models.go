package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
)

// LowStockThreshold is the quantity below which an item counts as low stock
// on the dashboard.
const LowStockThreshold = 10

type Stock struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID    `gorm:"not null;index" json:"organization_id"`
	Name      string          `gorm:"not null" json:"name"`
	Symbol    *string         `json:"symbol"`
	Price     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"price"`
	Quantity  int             `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateStockRequest struct {
	Name     string
	Symbol   *string
	Price    decimal.Decimal
	Quantity int
}

type UpdateStockRequest struct {
	Name     *string
	Symbol   *string
	Price    *decimal.Decimal
	Quantity *int
}

type ListStockRequest struct {
	pagination.Pagination
	Name string
}

type ListStockResponse struct {
	pagination.PageInfo
	Stocks []Stock `json:"stocks"`
}

type Service interface {
	Create(ctx context.Context, req CreateStockRequest) (*Stock, error)
	List(ctx context.Context, req ListStockRequest) (ListStockResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Stock, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateStockRequest) (*Stock, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrNotFound        = errors.New("not_found")
)
