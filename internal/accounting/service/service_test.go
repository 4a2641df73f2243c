package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/sentra/internal/accounting/domain"
	"github.com/smallbiznis/sentra/pkg/db"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Entry{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(ServiceParam{DB: gdb, Log: zap.NewNop(), GenID: node}), node
}

func orgContext(node *snowflake.Node) context.Context {
	return tenantctx.WithIdentity(context.Background(), tenantctx.Identity{OrgID: node.Generate()})
}

func TestCreateValidatesType(t *testing.T) {
	svc, node := newTestService(t)
	ctx := orgContext(node)

	_, err := svc.Create(ctx, domain.CreateEntryRequest{
		Type:   "transfer",
		Amount: decimal.RequireFromString("10"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = svc.Create(ctx, domain.CreateEntryRequest{
		Type:   domain.EntryCredit,
		Amount: decimal.RequireFromString("-10"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSummarize(t *testing.T) {
	svc, node := newTestService(t)
	ctx := orgContext(node)

	for _, e := range []struct {
		kind   domain.EntryType
		amount string
	}{
		{domain.EntryCredit, "100.50"},
		{domain.EntryCredit, "49.50"},
		{domain.EntryDebit, "40"},
	} {
		_, err := svc.Create(ctx, domain.CreateEntryRequest{
			Type:   e.kind,
			Amount: decimal.RequireFromString(e.amount),
		})
		require.NoError(t, err)
	}

	// Another tenant's entries must not show up.
	_, err := svc.Create(orgContext(node), domain.CreateEntryRequest{
		Type:   domain.EntryDebit,
		Amount: decimal.RequireFromString("999"),
	})
	require.NoError(t, err)

	summary, err := svc.Summarize(ctx)
	require.NoError(t, err)
	require.True(t, summary.TotalCredit.Equal(decimal.RequireFromString("150")))
	require.True(t, summary.TotalDebit.Equal(decimal.RequireFromString("40")))
	require.True(t, summary.Balance.Equal(decimal.RequireFromString("110")))
	require.EqualValues(t, 3, summary.EntryCount)
}

func TestSummarizeEmptyOrg(t *testing.T) {
	svc, node := newTestService(t)

	summary, err := svc.Summarize(orgContext(node))
	require.NoError(t, err)
	require.True(t, summary.TotalCredit.IsZero())
	require.True(t, summary.TotalDebit.IsZero())
	require.True(t, summary.Balance.IsZero())
	require.Zero(t, summary.EntryCount)
}
