package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/sentra/internal/auth/domain"
	"github.com/smallbiznis/sentra/internal/organization/domain"
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
		log:   p.Log.Named("organization.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.OwnerID == 0 {
		return nil, domain.ErrInvalidOwner
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		ID:           s.genID.Generate(),
		Name:         name,
		AddressLine1: strings.TrimSpace(req.Address),
		OwnerID:      req.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		link := tx.Model(&authdomain.User{}).
			Where("id = ?", req.OwnerID).
			Updates(map[string]any{
				"org_id":     org.ID,
				"role":       authdomain.RoleOwner,
				"updated_at": now,
			})
		if link.Error != nil {
			return link.Error
		}
		if link.RowsAffected == 0 {
			return domain.ErrInvalidOwner
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	var org domain.Organization
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}
