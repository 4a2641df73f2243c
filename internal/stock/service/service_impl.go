package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sentra/internal/stock/domain"
	"github.com/smallbiznis/sentra/pkg/db/option"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
	"github.com/smallbiznis/sentra/pkg/repository"
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
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Stock]
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("stock.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Stock](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateStockRequest) (*domain.Stock, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	stock := &domain.Stock{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		Symbol:    req.Symbol,
		Price:     req.Price,
		Quantity:  req.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *Service) List(ctx context.Context, req domain.ListStockRequest) (domain.ListStockResponse, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.ListStockResponse{}, err
	}

	page := req.Pagination.Clamp()
	filter := &domain.Stock{OrgID: orgID}
	if name := strings.TrimSpace(req.Name); name != "" {
		filter.Name = name
	}

	items, err := s.repo.Find(ctx, filter,
		option.ApplyPagination(page),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true, Allow: map[string]bool{"created_at": true}}),
	)
	if err != nil {
		return domain.ListStockResponse{}, err
	}

	stocks := make([]domain.Stock, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		stocks = append(stocks, *item)
	}

	return domain.ListStockResponse{
		PageInfo: pagination.NewPageInfo(page, len(stocks)),
		Stocks:   stocks,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Stock, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Stock{ID: id, OrgID: orgID})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateStockRequest) (*domain.Stock, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Symbol != nil {
		fields["symbol"] = *req.Symbol
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		fields["quantity"] = *req.Quantity
	}

	if err := s.repo.Update(ctx, id.String(), fields); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id.String())
}
