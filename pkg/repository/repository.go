package repository

import (
	"context"

	"github.com/smallbiznis/sentra/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is a generic parameterized store over a single gorm model. The
// schema descriptor is the model type itself (table name, columns, required
// fields), so every statement stays parameterized regardless of resource.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, resourceID string, resource any) error
	Delete(ctx context.Context, resourceID string) error
	Count(ctx context.Context, query *T) (int64, error)
	BatchCreate(ctx context.Context, resources []*T) error
}
