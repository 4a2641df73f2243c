package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sentra/internal/supplier/domain"
	"github.com/smallbiznis/sentra/pkg/db"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Supplier{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(ServiceParam{DB: gdb, Log: zap.NewNop(), GenID: node}), node
}

func orgContext(node *snowflake.Node) context.Context {
	return tenantctx.WithIdentity(context.Background(), tenantctx.Identity{OrgID: node.Generate()})
}

func strPtr(s string) *string { return &s }

func TestCreateAndGet(t *testing.T) {
	svc, node := newTestService(t)
	ctx := orgContext(node)

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:  "  Acme Corp  ",
		Phone: strPtr("555-1234"),
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", created.Name)
	require.Equal(t, domain.StatusActive, created.Status)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, node := newTestService(t)

	_, err := svc.Create(orgContext(node), domain.CreateSupplierRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreateRequiresTenant(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateSupplierRequest{Name: "Acme"})
	require.ErrorIs(t, err, tenantctx.ErrMissingTenant)
}

func TestListScopedToOrg(t *testing.T) {
	svc, node := newTestService(t)
	ctxA := orgContext(node)
	ctxB := orgContext(node)

	_, err := svc.Create(ctxA, domain.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.Create(ctxB, domain.CreateSupplierRequest{Name: "Globex"})
	require.NoError(t, err)

	resp, err := svc.List(ctxA, domain.ListSupplierRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Suppliers, 1)
	require.Equal(t, "Acme", resp.Suppliers[0].Name)
}

func TestUpdatePartial(t *testing.T) {
	svc, node := newTestService(t)
	ctx := orgContext(node)

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{Name: "Acme", Phone: strPtr("555-1234")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, domain.UpdateSupplierRequest{
		Status: strPtr("inactive"),
	})
	require.NoError(t, err)
	require.Equal(t, "inactive", updated.Status)
	require.Equal(t, "Acme", updated.Name)
	require.Equal(t, "555-1234", *updated.Phone)
}

func TestGetForeignOrgNotFound(t *testing.T) {
	svc, node := newTestService(t)
	ctxA := orgContext(node)
	ctxB := orgContext(node)

	created, err := svc.Create(ctxA, domain.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctxB, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctxB, created.ID), domain.ErrNotFound)
}
