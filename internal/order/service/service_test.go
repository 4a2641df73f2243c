package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/internal/order/domain"
	"github.com/smallbiznis/sentra/pkg/db"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&domain.SalesOrder{}, &domain.SalesOrderItem{},
		&domain.PurchaseOrder{}, &domain.PurchaseOrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(ServiceParam{DB: gdb, Log: zap.NewNop(), GenID: node})
	return svc, gdb, node
}

func orgContext(node *snowflake.Node) (context.Context, snowflake.ID) {
	orgID := node.Generate()
	ctx := tenantctx.WithIdentity(context.Background(), tenantctx.Identity{OrgID: orgID})
	return ctx, orgID
}

func strPtr(s string) *string { return &s }

func datePtr() *time.Time {
	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestCreateSalesOrderComputesTotal(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-001",
		CustomerName: strPtr("Acme Corp"),
		OrderDate:    datePtr(),
		Items: []domain.OrderItemInput{
			{ProductName: "Widget", Quantity: 2, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("10.50"))},
			{ProductName: "Gadget", Quantity: 3, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("4"))},
		},
	})
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("33")))
	require.Len(t, order.Items, 2)
	require.True(t, order.Items[0].TotalPrice.Equal(decimal.RequireFromString("21")))
	require.True(t, order.Items[1].TotalPrice.Equal(decimal.RequireFromString("12")))

	got, err := svc.GetSalesOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, got.TotalAmount.Equal(decimal.RequireFromString("33")))
	require.Equal(t, "Widget", got.Items[0].ProductName)
	require.Equal(t, "Gadget", got.Items[1].ProductName)
}

func TestCreateSalesOrderWithoutItems(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-empty",
		CustomerName: strPtr("Acme Corp"),
		OrderDate:    datePtr(),
	})
	require.NoError(t, err)
	require.True(t, order.TotalAmount.IsZero())
	require.Empty(t, order.Items)
}

func TestCreateSalesOrderMissingFields(t *testing.T) {
	svc, gdb, node := newTestService(t)
	ctx, _ := orgContext(node)

	_, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{SONumber: "SO-001"})
	var missing *domain.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"customer", "order_date"}, missing.Fields)

	var headers int64
	require.NoError(t, gdb.Model(&domain.SalesOrder{}).Count(&headers).Error)
	require.Zero(t, headers)

	// A customer id alone satisfies the counterparty requirement.
	customerID := node.Generate()
	_, err = svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:   "SO-002",
		CustomerID: &customerID,
		OrderDate:  datePtr(),
	})
	require.NoError(t, err)

	// A blank name does not.
	_, err = svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-003",
		CustomerName: strPtr("   "),
		OrderDate:    datePtr(),
	})
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"customer"}, missing.Fields)
}

func TestCreateSalesOrderItemShippedQuantity(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-ship",
		CustomerName: strPtr("Acme Corp"),
		OrderDate:    datePtr(),
		Items: []domain.OrderItemInput{
			{ProductName: "Widget", Quantity: 5, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("2")), ShippedOrReceivedQuantity: 3},
			{ProductName: "Gadget", Quantity: 1, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("4"))},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetSalesOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Equal(t, 3, got.Items[0].ShippedQuantity)
	require.Zero(t, got.Items[1].ShippedQuantity)
}

func TestCreateSalesOrderDuplicateNumber(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	_, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber: "SO-001", CustomerName: strPtr("Acme"), OrderDate: datePtr(),
	})
	require.NoError(t, err)

	_, err = svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber: "SO-001", CustomerName: strPtr("Acme"), OrderDate: datePtr(),
	})
	require.ErrorIs(t, err, domain.ErrDuplicateOrderNumber)
}

func TestCreateSalesOrderNumberReusableAcrossOrgs(t *testing.T) {
	svc, _, node := newTestService(t)
	ctxA, _ := orgContext(node)
	ctxB, _ := orgContext(node)

	_, err := svc.CreateSalesOrder(ctxA, domain.CreateSalesOrderRequest{
		SONumber: "SO-001", CustomerName: strPtr("Acme"), OrderDate: datePtr(),
	})
	require.NoError(t, err)

	_, err = svc.CreateSalesOrder(ctxB, domain.CreateSalesOrderRequest{
		SONumber: "SO-001", CustomerName: strPtr("Globex"), OrderDate: datePtr(),
	})
	require.NoError(t, err)
}

func TestCreateSalesOrderRollsBack(t *testing.T) {
	svc, gdb, node := newTestService(t)
	ctx, _ := orgContext(node)

	// Force the item insert to fail mid-transaction; the header written
	// before it must not survive.
	require.NoError(t, gdb.Migrator().DropTable(&domain.SalesOrderItem{}))

	_, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-rollback",
		CustomerName: strPtr("Acme"),
		OrderDate:    datePtr(),
		Items:        []domain.OrderItemInput{{ProductName: "Widget", Quantity: 1}},
	})
	require.Error(t, err)

	var creation *domain.OrderCreationError
	require.ErrorAs(t, err, &creation)
	require.Equal(t, "items", creation.Stage)

	var headers int64
	require.NoError(t, gdb.Model(&domain.SalesOrder{}).Count(&headers).Error)
	require.Zero(t, headers)
}

func TestCreateSalesOrderRequiresTenant(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateSalesOrder(context.Background(), domain.CreateSalesOrderRequest{SONumber: "SO-001"})
	require.ErrorIs(t, err, tenantctx.ErrMissingTenant)
}

func TestCreateSalesOrderRejectsBlankNumber(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	_, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{SONumber: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidOrderNumber)
}

func TestUpdateSalesOrderKeepsTotal(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-001",
		CustomerName: strPtr("Acme"),
		OrderDate:    datePtr(),
		Items: []domain.OrderItemInput{
			{ProductName: "Widget", Quantity: 4, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("25"))},
		},
	})
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("100")))

	updated, err := svc.UpdateSalesOrder(ctx, order.ID, domain.UpdateOrderRequest{
		Status: strPtr("completed"),
		Notes:  strPtr("shipped early"),
	})
	require.NoError(t, err)
	require.Equal(t, "completed", updated.Status)
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("100")))
	require.Len(t, updated.Items, 1)
}

func TestGetSalesOrderForeignOrg(t *testing.T) {
	svc, _, node := newTestService(t)
	ctxA, _ := orgContext(node)
	ctxB, _ := orgContext(node)

	order, err := svc.CreateSalesOrder(ctxA, domain.CreateSalesOrderRequest{
		SONumber: "SO-001", CustomerName: strPtr("Acme"), OrderDate: datePtr(),
	})
	require.NoError(t, err)

	_, err = svc.GetSalesOrder(ctxB, order.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSalesOrderRemovesItems(t *testing.T) {
	svc, gdb, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-001",
		CustomerName: strPtr("Acme"),
		OrderDate:    datePtr(),
		Items: []domain.OrderItemInput{
			{ProductName: "Widget", Quantity: 1, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("9.99"))},
			{ProductName: "Gadget", Quantity: 2, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("1"))},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSalesOrder(ctx, order.ID))

	_, err = svc.GetSalesOrder(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var items int64
	require.NoError(t, gdb.Model(&domain.SalesOrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	require.Zero(t, items)
}

func TestListSalesOrdersSearch(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	_, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber: "SO-100", CustomerName: strPtr("Acme Corp"), OrderDate: datePtr(),
	})
	require.NoError(t, err)
	_, err = svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber: "SO-200", CustomerName: strPtr("Globex"), OrderDate: datePtr(),
	})
	require.NoError(t, err)

	resp, err := svc.ListSalesOrders(ctx, domain.ListOrderRequest{Q: "Acme"})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 1)
	require.Equal(t, "SO-100", resp.Orders[0].SONumber)

	resp, err = svc.ListSalesOrders(ctx, domain.ListOrderRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 2)
}

func TestSalesAnalytics(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	_, err := svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-1",
		CustomerName: strPtr("Acme"),
		OrderDate:    datePtr(),
		Items:        []domain.OrderItemInput{{ProductName: "Widget", Quantity: 2, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("50"))}},
	})
	require.NoError(t, err)
	_, err = svc.CreateSalesOrder(ctx, domain.CreateSalesOrderRequest{
		SONumber:     "SO-2",
		CustomerName: strPtr("Globex"),
		OrderDate:    datePtr(),
		Status:       "completed",
		Items:        []domain.OrderItemInput{{ProductName: "Gadget", Quantity: 1, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("25"))}},
	})
	require.NoError(t, err)

	stats, err := svc.SalesAnalytics(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.OrderCount)
	require.EqualValues(t, 1, stats.PendingCount)
	require.True(t, stats.Revenue.Equal(decimal.RequireFromString("125")))
	require.Len(t, stats.RecentOrders, 2)
}

func TestCreatePurchaseOrderComputesTotal(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreatePurchaseOrder(ctx, domain.CreatePurchaseOrderRequest{
		PONumber:     "PO-001",
		SupplierName: strPtr("Initech Supplies"),
		OrderDate:    datePtr(),
		Items: []domain.OrderItemInput{
			{ProductName: "Raw stock", Quantity: 10, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("3.25"))},
		},
	})
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("32.5")))

	got, err := svc.GetPurchaseOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, 10, got.Items[0].Quantity)
}

func TestCreatePurchaseOrderMissingFields(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	_, err := svc.CreatePurchaseOrder(ctx, domain.CreatePurchaseOrderRequest{PONumber: "PO-001"})
	var missing *domain.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"supplier", "order_date"}, missing.Fields)
}

func TestCreatePurchaseOrderItemReceivedQuantity(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreatePurchaseOrder(ctx, domain.CreatePurchaseOrderRequest{
		PONumber:     "PO-recv",
		SupplierName: strPtr("Initech Supplies"),
		OrderDate:    datePtr(),
		Items: []domain.OrderItemInput{
			{ProductName: "Raw stock", Quantity: 10, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("3")), ShippedOrReceivedQuantity: 4},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetPurchaseOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, 4, got.Items[0].ReceivedQuantity)
}

func TestDeletePurchaseOrderRemovesItems(t *testing.T) {
	svc, gdb, node := newTestService(t)
	ctx, _ := orgContext(node)

	order, err := svc.CreatePurchaseOrder(ctx, domain.CreatePurchaseOrderRequest{
		PONumber:     "PO-001",
		SupplierName: strPtr("Initech Supplies"),
		OrderDate:    datePtr(),
		Items:        []domain.OrderItemInput{{ProductName: "Raw stock", Quantity: 1, UnitPrice: domain.FlexDecimal(decimal.RequireFromString("2"))}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePurchaseOrder(ctx, order.ID))

	var items int64
	require.NoError(t, gdb.Model(&domain.PurchaseOrderItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	require.Zero(t, items)
}
