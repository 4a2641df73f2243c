package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// SalesOrder is the selling-side order header. The order number is unique per
// organization, not globally, so two tenants can both issue SO-001.
type SalesOrder struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID    `gorm:"not null;uniqueIndex:idx_sales_orders_org_number" json:"organization_id"`
	SONumber     string          `gorm:"column:so_number;not null;uniqueIndex:idx_sales_orders_org_number" json:"so_number"`
	CustomerID   *snowflake.ID   `gorm:"index" json:"customer_id"`
	CustomerName *string         `json:"customer_name"`
	OrderDate    time.Time       `gorm:"not null" json:"order_date"`
	DeliveryDate *time.Time      `json:"delivery_date"`
	Status       string          `gorm:"not null;default:pending" json:"status"`
	Notes        *string         `json:"notes"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_amount"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Items are loaded explicitly so writes to the header never cascade.
	Items []SalesOrderItem `gorm:"-" json:"items,omitempty"`
}

type SalesOrderItem struct {
	ID              snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID         snowflake.ID    `gorm:"not null;index" json:"order_id"`
	ProductName     string          `gorm:"not null" json:"product_name"`
	SKU             *string         `gorm:"column:sku" json:"sku"`
	Quantity        int             `gorm:"not null;default:0" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_price"`
	ShippedQuantity int             `gorm:"not null;default:0" json:"shipped_quantity"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PurchaseOrder mirrors SalesOrder for the buying side.
type PurchaseOrder struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID    `gorm:"not null;uniqueIndex:idx_purchase_orders_org_number" json:"organization_id"`
	PONumber     string          `gorm:"column:po_number;not null;uniqueIndex:idx_purchase_orders_org_number" json:"po_number"`
	SupplierID   *snowflake.ID   `gorm:"index" json:"supplier_id"`
	SupplierName *string         `json:"supplier_name"`
	OrderDate    time.Time       `gorm:"not null" json:"order_date"`
	ExpectedDate *time.Time      `json:"expected_date"`
	Status       string          `gorm:"not null;default:pending" json:"status"`
	Notes        *string         `json:"notes"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_amount"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []PurchaseOrderItem `gorm:"-" json:"items,omitempty"`
}

type PurchaseOrderItem struct {
	ID               snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID          snowflake.ID    `gorm:"not null;index" json:"order_id"`
	ProductName      string          `gorm:"not null" json:"product_name"`
	SKU              *string         `gorm:"column:sku" json:"sku"`
	Quantity         int             `gorm:"not null;default:0" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"unit_price"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_price"`
	ReceivedQuantity int             `gorm:"not null;default:0" json:"received_quantity"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// OrderItemInput is the caller-facing shape of one line. Quantity and unit
// price tolerate strings and junk characters; bad values coerce to zero
// instead of failing the whole order.
type OrderItemInput struct {
	ProductName string       `json:"product_name"`
	SKU         *string      `json:"sku"`
	Quantity    FlexQuantity `json:"quantity"`
	UnitPrice   FlexDecimal  `json:"unit_price"`

	// ShippedOrReceivedQuantity seeds the fulfillment counter: shipped on
	// sales lines, received on purchase lines.
	ShippedOrReceivedQuantity FlexQuantity `json:"shipped_or_received_quantity"`
}

type CreateSalesOrderRequest struct {
	SONumber     string           `json:"so_number"`
	CustomerID   *snowflake.ID    `json:"customer_id"`
	CustomerName *string          `json:"customer_name"`
	OrderDate    *time.Time       `json:"order_date"`
	DeliveryDate *time.Time       `json:"delivery_date"`
	Status       string           `json:"status"`
	Notes        *string          `json:"notes"`
	Items        []OrderItemInput `json:"items"`
}

type CreatePurchaseOrderRequest struct {
	PONumber     string           `json:"po_number"`
	SupplierID   *snowflake.ID    `json:"supplier_id"`
	SupplierName *string          `json:"supplier_name"`
	OrderDate    *time.Time       `json:"order_date"`
	ExpectedDate *time.Time       `json:"expected_date"`
	Status       string           `json:"status"`
	Notes        *string          `json:"notes"`
	Items        []OrderItemInput `json:"items"`
}

// UpdateOrderRequest touches header fields only. Line items are immutable
// after creation and the stored total is never recomputed here; the create
// path is the single writer of total_amount.
type UpdateOrderRequest struct {
	CustomerName *string    `json:"customer_name,omitempty"`
	SupplierName *string    `json:"supplier_name,omitempty"`
	OrderDate    *time.Time `json:"order_date,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	ExpectedDate *time.Time `json:"expected_date,omitempty"`
	Status       *string    `json:"status,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type ListOrderRequest struct {
	pagination.Pagination
	Q      string
	Status string
}

type ListSalesOrderResponse struct {
	pagination.PageInfo
	Orders []SalesOrder `json:"orders"`
}

type ListPurchaseOrderResponse struct {
	pagination.PageInfo
	Orders []PurchaseOrder `json:"orders"`
}

// SalesAnalytics is the selling roll-up for one organization.
type SalesAnalytics struct {
	OrderCount   int64           `json:"order_count"`
	PendingCount int64           `json:"pending_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	RecentOrders []SalesOrder    `json:"recent_orders"`
}

type Service interface {
	CreateSalesOrder(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrder, error)
	GetSalesOrder(ctx context.Context, id snowflake.ID) (*SalesOrder, error)
	ListSalesOrders(ctx context.Context, req ListOrderRequest) (ListSalesOrderResponse, error)
	UpdateSalesOrder(ctx context.Context, id snowflake.ID, req UpdateOrderRequest) (*SalesOrder, error)
	DeleteSalesOrder(ctx context.Context, id snowflake.ID) error
	SalesAnalytics(ctx context.Context) (SalesAnalytics, error)

	CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id snowflake.ID) (*PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, req ListOrderRequest) (ListPurchaseOrderResponse, error)
	UpdatePurchaseOrder(ctx context.Context, id snowflake.ID, req UpdateOrderRequest) (*PurchaseOrder, error)
	DeletePurchaseOrder(ctx context.Context, id snowflake.ID) error
}

var (
	ErrInvalidOrderNumber   = errors.New("invalid_order_number")
	ErrDuplicateOrderNumber = errors.New("duplicate_order_number")
	ErrMissingStoreField    = errors.New("missing_store_field")
	ErrNotFound             = errors.New("not_found")
)

// OrderCreationError marks a failure inside the create transaction. The whole
// write is rolled back before this is returned, so Stage is diagnostic only.
type OrderCreationError struct {
	Stage string
	Err   error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("order creation failed (%s): %v", e.Stage, e.Err)
}

func (e *OrderCreationError) Unwrap() error { return e.Err }

// MissingFieldsError rejects a create request before any write happens. It
// names every absent required field so the caller can fix them all at once.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
