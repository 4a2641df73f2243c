package service

import (
	"context"

	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/sentra/internal/customer/domain"
	"github.com/smallbiznis/sentra/internal/dashboard/domain"
	orderdomain "github.com/smallbiznis/sentra/internal/order/domain"
	stockdomain "github.com/smallbiznis/sentra/internal/stock/domain"
	supplierdomain "github.com/smallbiznis/sentra/internal/supplier/domain"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

func (s *Service) Overview(ctx context.Context) (domain.Overview, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.Overview{}, err
	}

	var out domain.Overview
	out.Revenue = decimal.Zero

	var sales struct {
		Count   int64
		Revenue decimal.Decimal
	}
	err = s.db.WithContext(ctx).
		Model(&orderdomain.SalesOrder{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("org_id = ?", orgID).
		Scan(&sales).Error
	if err != nil {
		return domain.Overview{}, err
	}
	out.SalesOrderCount = sales.Count
	out.Revenue = sales.Revenue

	counts := []struct {
		model any
		where []any
		dst   *int64
	}{
		{&orderdomain.PurchaseOrder{}, []any{"org_id = ?", orgID}, &out.PurchaseOrderCount},
		{&orderdomain.SalesOrder{}, []any{"org_id = ? AND status = ?", orgID, orderdomain.StatusPending}, &out.PendingOrderCount},
		{&supplierdomain.Supplier{}, []any{"org_id = ?", orgID}, &out.SupplierCount},
		{&customerdomain.Customer{}, []any{"org_id = ?", orgID}, &out.CustomerCount},
		{&stockdomain.Stock{}, []any{"org_id = ?", orgID}, &out.StockCount},
		{&stockdomain.Stock{}, []any{"org_id = ? AND quantity < ?", orgID, stockdomain.LowStockThreshold}, &out.LowStockCount},
	}
	for _, c := range counts {
		err := s.db.WithContext(ctx).
			Model(c.model).
			Where(c.where[0], c.where[1:]...).
			Count(c.dst).Error
		if err != nil {
			return domain.Overview{}, err
		}
	}

	return out, nil
}
