package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/internal/accounting/domain"
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
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Entry]
}

func New(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("accounting.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Entry](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEntryRequest) (*domain.Entry, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	if !req.Type.Valid() {
		return nil, domain.ErrInvalidType
	}
	if req.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = req.EntryDate.UTC()
	}

	entry := &domain.Entry{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		EntryDate:   entryDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, req domain.ListEntryRequest) (domain.ListEntryResponse, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.ListEntryResponse{}, err
	}

	if req.Type != "" && !req.Type.Valid() {
		return domain.ListEntryResponse{}, domain.ErrInvalidType
	}

	page := req.Pagination.Clamp()
	filter := &domain.Entry{OrgID: orgID, Type: req.Type}

	items, err := s.repo.Find(ctx, filter,
		option.ApplyPagination(page),
		option.WithSortBy(option.QuerySortBy{Field: "entry_date", Desc: true, Allow: map[string]bool{"entry_date": true}}),
	)
	if err != nil {
		return domain.ListEntryResponse{}, err
	}

	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}

	return domain.ListEntryResponse{
		PageInfo: pagination.NewPageInfo(page, len(entries)),
		Entries:  entries,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Entry, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Entry{ID: id, OrgID: orgID})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id.String())
}

func (s *Service) Summarize(ctx context.Context) (domain.Summary, error) {
	orgID, err := tenantctx.RequireOrgID(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	var rows []struct {
		Type  domain.EntryType
		Total decimal.Decimal
		Count int64
	}
	err = s.db.WithContext(ctx).
		Model(&domain.Entry{}).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("org_id = ?", orgID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summary{
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
		Balance:     decimal.Zero,
	}
	for _, row := range rows {
		switch row.Type {
		case domain.EntryCredit:
			summary.TotalCredit = row.Total
		case domain.EntryDebit:
			summary.TotalDebit = row.Total
		}
		summary.EntryCount += row.Count
	}
	summary.Balance = summary.TotalCredit.Sub(summary.TotalDebit)
	return summary, nil
}
