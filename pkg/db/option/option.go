package option

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/sentra/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement. Options compose so repositories can
// accept filtering, ordering and paging without widening their signatures.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

type Operator string

const (
	EQ  Operator = "="
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

func ApplyOperator(cond Condition) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s %s ?", cond.Field, cond.Operator), cond.Value)
	})
}

type QuerySortBy struct {
	Field string
	Desc  bool
	// Allow lists the sortable columns. A field outside the list is ignored
	// rather than interpolated into the statement.
	Allow map[string]bool
}

func WithSortBy(sort QuerySortBy) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(sort.Field)
		if field == "" || !sort.Allow[field] {
			return db
		}
		direction := "asc"
		if sort.Desc {
			direction = "desc"
		}
		return db.Order(fmt.Sprintf("%s %s", field, direction))
	})
}

func ApplyPagination(page pagination.Pagination) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		limit := page.PageSize
		if limit <= 0 {
			limit = pagination.DefaultPageSize
		}
		if limit > pagination.MaxPageSize {
			limit = pagination.MaxPageSize
		}
		if page.Offset > 0 {
			db = db.Offset(page.Offset)
		}
		return db.Limit(limit)
	})
}

func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit)
	})
}
