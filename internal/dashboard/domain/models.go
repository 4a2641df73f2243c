package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Overview is the landing-page roll-up for one organization.
type Overview struct {
	Revenue            decimal.Decimal `json:"revenue"`
	SalesOrderCount    int64           `json:"sales_order_count"`
	PurchaseOrderCount int64           `json:"purchase_order_count"`
	PendingOrderCount  int64           `json:"pending_order_count"`
	SupplierCount      int64           `json:"supplier_count"`
	CustomerCount      int64           `json:"customer_count"`
	StockCount         int64           `json:"stock_count"`
	LowStockCount      int64           `json:"low_stock_count"`
}

type Service interface {
	Overview(ctx context.Context) (Overview, error)
}
