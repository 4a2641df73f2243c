package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/internal/order/domain"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Service) CreatePurchaseOrder(ctx context.Context, req domain.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.PONumber)
	if number == "" {
		return nil, domain.ErrInvalidOrderNumber
	}

	var missing []string
	if req.SupplierID == nil && (req.SupplierName == nil || strings.TrimSpace(*req.SupplierName) == "") {
		missing = append(missing, "supplier")
	}
	if req.OrderDate == nil {
		missing = append(missing, "order_date")
	}
	if len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}

	now := time.Now().UTC()
	orderDate := req.OrderDate.UTC()

	order := &domain.PurchaseOrder{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		PONumber:     number,
		SupplierID:   req.SupplierID,
		SupplierName: req.SupplierName,
		OrderDate:    orderDate,
		ExpectedDate: req.ExpectedDate,
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

			item := domain.PurchaseOrderItem{
				ID:               s.genID.Generate(),
				OrderID:          order.ID,
				ProductName:      strings.TrimSpace(in.ProductName),
				SKU:              in.SKU,
				Quantity:         qty,
				UnitPrice:        price,
				TotalPrice:       line,
				ReceivedQuantity: in.ShippedOrReceivedQuantity.Int(),
				CreatedAt:        time.Now().UTC(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return classifyWriteErr("items", err)
			}
			order.Items = append(order.Items, item)
			total = total.Add(line)
		}

		order.TotalAmount = total
		order.UpdatedAt = time.Now().UTC()
		err := tx.Model(&domain.PurchaseOrder{}).
			Where("id = ?", order.ID).
			Updates(map[string]any{"total_amount": total, "updated_at": order.UpdatedAt}).Error
		if err != nil {
			return classifyWriteErr("total", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("purchase order create rolled back",
			zap.String("po_number", number),
			zap.Error(err),
		)
		return nil, err
	}
	return order, nil
}

func (s *Service) GetPurchaseOrder(ctx context.Context, id snowflake.ID) (*domain.PurchaseOrder, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	var order domain.PurchaseOrder
	err = s.db.WithContext(ctx).
		Where("id = ? AND org_id = ?", id, orgID).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("id asc").
		Find(&order.Items).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) ListPurchaseOrders(ctx context.Context, req domain.ListOrderRequest) (domain.ListPurchaseOrderResponse, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.ListPurchaseOrderResponse{}, err
	}

	page := req.Pagination.Clamp()
	query := s.db.WithContext(ctx).
		Model(&domain.PurchaseOrder{}).
		Where("org_id = ?", orgID)
	if q := strings.TrimSpace(req.Q); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("po_number LIKE ? OR supplier_name LIKE ?", pattern, pattern)
	}
	if status := normalizeStatus(req.Status); req.Status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []domain.PurchaseOrder
	err = query.Order("created_at desc").
		Offset(page.Offset).
		Limit(page.PageSize).
		Find(&orders).Error
	if err != nil {
		return domain.ListPurchaseOrderResponse{}, err
	}

	return domain.ListPurchaseOrderResponse{
		PageInfo: pagination.NewPageInfo(page, len(orders)),
		Orders:   orders,
	}, nil
}

func (s *Service) UpdatePurchaseOrder(ctx context.Context, id snowflake.ID, req domain.UpdateOrderRequest) (*domain.PurchaseOrder, error) {
	if _, err := s.GetPurchaseOrder(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.SupplierName != nil {
		fields["supplier_name"] = *req.SupplierName
	}
	if req.OrderDate != nil {
		fields["order_date"] = req.OrderDate.UTC()
	}
	if req.ExpectedDate != nil {
		fields["expected_date"] = req.ExpectedDate.UTC()
	}
	if req.Status != nil {
		fields["status"] = normalizeStatus(*req.Status)
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	err := s.db.WithContext(ctx).
		Model(&domain.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return s.GetPurchaseOrder(ctx, id)
}

func (s *Service) DeletePurchaseOrder(ctx context.Context, id snowflake.ID) error {
	if _, err := s.GetPurchaseOrder(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.PurchaseOrder{}).Error
	})
}
