package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/internal/order/domain"
	"github.com/smallbiznis/sentra/pkg/db"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		genID: p.GenID,
	}
}

// classifyWriteErr translates store failures inside the create transaction.
// Duplicate order numbers surface as their own sentinel so the API layer can
// answer 409; everything else is wrapped with the stage it failed at.
func classifyWriteErr(stage string, err error) error {
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicateOrderNumber
	}
	if db.IsMissingFieldErr(err) {
		return &domain.OrderCreationError{Stage: stage, Err: domain.ErrMissingStoreField}
	}
	return &domain.OrderCreationError{Stage: stage, Err: err}
}

func lineTotal(qty int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

func normalizeStatus(status string) string {
	status = strings.TrimSpace(strings.ToLower(status))
	if status == "" {
		return domain.StatusPending
	}
	return status
}

func (s *Service) CreateSalesOrder(ctx context.Context, req domain.CreateSalesOrderRequest) (*domain.SalesOrder, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.SONumber)
	if number == "" {
		return nil, domain.ErrInvalidOrderNumber
	}

	var missing []string
	if req.CustomerID == nil && (req.CustomerName == nil || strings.TrimSpace(*req.CustomerName) == "") {
		missing = append(missing, "customer")
	}
	if req.OrderDate == nil {
		missing = append(missing, "order_date")
	}
	if len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}

	now := time.Now().UTC()
	orderDate := req.OrderDate.UTC()

	order := &domain.SalesOrder{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		SONumber:     number,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		OrderDate:    orderDate,
		DeliveryDate: req.DeliveryDate,
		Status:       normalizeStatus(req.Status),
		Notes:        req.Notes,
		TotalAmount:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return classifyWriteErr("header", err)
		}

		total := decimal.Zero
		for _, in := range req.Items {
			qty := in.Quantity.Int()
			price := in.UnitPrice.Decimal()
			line := lineTotal(qty, price)

			item := domain.SalesOrderItem{
				ID:              s.genID.Generate(),
				OrderID:         order.ID,
				ProductName:     strings.TrimSpace(in.ProductName),
				SKU:             in.SKU,
				Quantity:        qty,
				UnitPrice:       price,
				TotalPrice:      line,
				ShippedQuantity: in.ShippedOrReceivedQuantity.Int(),
				CreatedAt:       time.Now().UTC(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return classifyWriteErr("items", err)
			}
			order.Items = append(order.Items, item)
			total = total.Add(line)
		}

		order.TotalAmount = total
		order.UpdatedAt = time.Now().UTC()
		err := tx.Model(&domain.SalesOrder{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{"total_amount": total, "updated_at": order.UpdatedAt}).Error
		if err != nil {
			return classifyWriteErr("total", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("sales order create rolled back",
			zap.String("so_number", number),
			zap.Error(err),
		)
		return nil, err
	}
	return order, nil
}

func (s *Service) GetSalesOrder(ctx context.Context, id snowflake.ID) (*domain.SalesOrder, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	var order domain.SalesOrder
	err = s.db.WithContext(ctx).
		Where("id = ? AND org_id = ?", id, orgID).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// id ASC is insertion order; item IDs are generated sequentially inside
	// the create transaction.
	err = s.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("id asc").
		Find(&order.Items).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) ListSalesOrders(ctx context.Context, req domain.ListOrderRequest) (domain.ListSalesOrderResponse, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.ListSalesOrderResponse{}, err
	}

	page := req.Pagination.Clamp()
	query := s.db.WithContext(ctx).
		Model(&domain.SalesOrder{}).
		Where("org_id = ?", orgID)
	if q := strings.TrimSpace(req.Q); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("so_number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	if status := normalizeStatus(req.Status); req.Status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []domain.SalesOrder
	err = query.Order("created_at desc").
		Offset(page.Offset).
		Limit(page.PageSize).
		Find(&orders).Error
	if err != nil {
		return domain.ListSalesOrderResponse{}, err
	}

	return domain.ListSalesOrderResponse{
		PageInfo: pagination.NewPageInfo(page, len(orders)),
		Orders:   orders,
	}, nil
}

func (s *Service) UpdateSalesOrder(ctx context.Context, id snowflake.ID, req domain.UpdateOrderRequest) (*domain.SalesOrder, error) {
	if _, err := s.GetSalesOrder(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.CustomerName != nil {
		fields["customer_name"] = *req.CustomerName
	}
	if req.OrderDate != nil {
		fields["order_date"] = req.OrderDate.UTC()
	}
	if req.DeliveryDate != nil {
		fields["delivery_date"] = req.DeliveryDate.UTC()
	}
	if req.Status != nil {
		fields["status"] = normalizeStatus(*req.Status)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	// Header fields only. total_amount is written once, by the create
	// transaction, and stays as issued even when the status moves on.
	err := s.db.WithContext(ctx).
		Model(&domain.SalesOrder{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return s.GetSalesOrder(ctx, id)
}

func (s *Service) DeleteSalesOrder(ctx context.Context, id snowflake.ID) error {
	if _, err := s.GetSalesOrder(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.SalesOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.SalesOrder{}).Error
	})
}

func (s *Service) SalesAnalytics(ctx context.Context) (domain.SalesAnalytics, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.SalesAnalytics{}, err
	}

	var totals struct {
		Count   int64
		Revenue decimal.Decimal
	}
	err = s.db.WithContext(ctx).
		Model(&domain.SalesOrder{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("org_id = ?", orgID).
		Scan(&totals).Error
	if err != nil {
		return domain.SalesAnalytics{}, err
	}

	var pending int64
	err = s.db.WithContext(ctx).
		Model(&domain.SalesOrder{}).
		Where("org_id = ? AND status = ?", orgID, domain.StatusPending).
		Count(&pending).Error
	if err != nil {
		return domain.SalesAnalytics{}, err
	}

	var recent []domain.SalesOrder
	err = s.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at desc").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		return domain.SalesAnalytics{}, err
	}

	return domain.SalesAnalytics{
		OrderCount:   totals.Count,
		PendingCount: pending,
		Revenue:      totals.Revenue,
		RecentOrders: recent,
	}, nil
}
