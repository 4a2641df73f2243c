package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sentra/internal/asset/domain"
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
	repo  repository.Repository[domain.Asset]
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("asset.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Asset](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAssetRequest) (*domain.Asset, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	code := strings.TrimSpace(req.AssetCode)
	if code == "" {
		code = newAssetCode(orgID)
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		AssetCode:    code,
		Name:         name,
		Location:     req.Location,
		PurchaseCost: req.PurchaseCost,
		CurrentValue: req.CurrentValue,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) List(ctx context.Context, req domain.ListAssetRequest) (domain.ListAssetResponse, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.ListAssetResponse{}, err
	}

	page := req.Pagination.Clamp()
	filter := &domain.Asset{OrgID: orgID}
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
		return domain.ListAssetResponse{}, err
	}

	assets := make([]domain.Asset, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		assets = append(assets, *item)
	}

	return domain.ListAssetResponse{
		PageInfo: pagination.NewPageInfo(page, len(assets)),
		Assets:   assets,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Asset, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Asset{ID: id, OrgID: orgID})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateAssetRequest) (*domain.Asset, error) {
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
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.PurchaseCost != nil {
		fields["purchase_cost"] = *req.PurchaseCost
	}
	if req.CurrentValue != nil {
		fields["current_value"] = *req.CurrentValue
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

// newAssetCode mirrors the legacy code shape so already-printed labels keep
// sorting next to new ones: AST-<org>-<unix>-<rand4>.
func newAssetCode(orgID snowflake.ID) string {
	return fmt.Sprintf("AST-%d-%d-%04d", orgID, time.Now().Unix(), 1000+rand.Intn(9000))
}
