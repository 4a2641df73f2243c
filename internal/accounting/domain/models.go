package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/pkg/db/pagination"
)

type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

func (t EntryType) Valid() bool {
	return t == EntryCredit || t == EntryDebit
}

type Entry struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID    `gorm:"not null;index" json:"organization_id"`
	Type        EntryType       `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Description *string         `json:"description"`
	EntryDate   time.Time       `gorm:"not null" json:"entry_date"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Entry) TableName() string { return "accounting_entries" }

type CreateEntryRequest struct {
	Type        EntryType
	Amount      decimal.Decimal
	Description *string
	EntryDate   *time.Time
}

type ListEntryRequest struct {
	pagination.Pagination
	Type EntryType
}

type ListEntryResponse struct {
	pagination.PageInfo
	Entries []Entry `json:"entries"`
}

// Summary is the running position for one organization.
type Summary struct {
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	Balance     decimal.Decimal `json:"balance"`
	EntryCount  int64           `json:"entry_count"`
}

type Service interface {
	Create(ctx context.Context, req CreateEntryRequest) (*Entry, error)
	List(ctx context.Context, req ListEntryRequest) (ListEntryResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Entry, error)
	Delete(ctx context.Context, id snowflake.ID) error
	Summarize(ctx context.Context) (Summary, error)
}

var (
	ErrInvalidType   = errors.New("invalid_entry_type")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("not_found")
)
