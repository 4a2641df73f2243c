package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sentra/internal/supplier/domain"
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
	repo  repository.Repository[domain.Supplier]
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("supplier.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Supplier](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (*domain.Supplier, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	supplier := &domain.Supplier{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		Name:          name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        domain.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSupplierRequest) (domain.ListSupplierResponse, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.ListSupplierResponse{}, err
	}

	page := req.Pagination.Clamp()
	filter := &domain.Supplier{OrgID: orgID}
	if status := strings.TrimSpace(req.Status); status != "" {
		filter.Status = status
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		filter.Name = name
	}

	items, err := s.repo.Find(ctx, filter,
		option.ApplyPagination(page),
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true, Allow: map[string]bool{"created_at": true}}),
	)
	if err != nil {
		return domain.ListSupplierResponse{}, err
	}

	suppliers := make([]domain.Supplier, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		suppliers = append(suppliers, *item)
	}

	return domain.ListSupplierResponse{
		PageInfo:  pagination.NewPageInfo(page, len(suppliers)),
		Suppliers: suppliers,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Supplier, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Supplier{ID: id, OrgID: orgID})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateSupplierRequest) (*domain.Supplier, error) {
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
	if req.ContactPerson != nil {
		fields["contact_person"] = *req.ContactPerson
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Status != nil {
		fields["status"] = strings.TrimSpace(*req.Status)
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
