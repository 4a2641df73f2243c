package voice

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	assetdomain "github.com/smallbiznis/sentra/internal/asset/domain"
	assetservice "github.com/smallbiznis/sentra/internal/asset/service"
	customerdomain "github.com/smallbiznis/sentra/internal/customer/domain"
	customerservice "github.com/smallbiznis/sentra/internal/customer/service"
	supplierdomain "github.com/smallbiznis/sentra/internal/supplier/domain"
	supplierservice "github.com/smallbiznis/sentra/internal/supplier/service"
	"github.com/smallbiznis/sentra/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&supplierdomain.Supplier{},
		&customerdomain.Customer{},
		&assetdomain.Asset{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	d := NewDispatcher(DispatcherParam{
		Log:       log,
		Suppliers: supplierservice.New(supplierservice.ServiceParam{DB: gdb, Log: log, GenID: node}),
		Customers: customerservice.New(customerservice.ServiceParam{DB: gdb, Log: log, GenID: node}),
		Assets:    assetservice.New(assetservice.ServiceParam{DB: gdb, Log: log, GenID: node}),
	})
	return d, gdb, node
}

func TestDispatchNotReadyUnchanged(t *testing.T) {
	d, gdb, node := newTestDispatcher(t)

	intent := Parse("add supplier phone 555-1234")
	require.False(t, intent.Ready)

	out := d.Dispatch(context.Background(), intent, node.Generate())
	require.Nil(t, out.Exec)
	require.Equal(t, intent, out)

	var count int64
	require.NoError(t, gdb.Model(&supplierdomain.Supplier{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDispatchWithoutTenant(t *testing.T) {
	d, gdb, _ := newTestDispatcher(t)

	intent := Parse("add supplier name Acme phone 555-1234")
	out := d.Dispatch(context.Background(), intent, 0)

	require.NotNil(t, out.Exec)
	require.False(t, out.Exec.OK)
	require.Equal(t, "tenant required", out.Exec.Error)

	var count int64
	require.NoError(t, gdb.Model(&supplierdomain.Supplier{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestDispatchCreatesSupplier(t *testing.T) {
	d, gdb, node := newTestDispatcher(t)
	orgID := node.Generate()

	intent := Parse("add supplier name Acme phone 555-1234 email hi@acme.test")
	out := d.Dispatch(context.Background(), intent, orgID)

	require.NotNil(t, out.Exec)
	require.True(t, out.Exec.OK)

	created, ok := out.Exec.Created.(*supplierdomain.Supplier)
	require.True(t, ok)
	require.Equal(t, "Acme", created.Name)
	require.Equal(t, orgID, created.OrgID)
	require.Equal(t, "555-1234", *created.Phone)
	require.Nil(t, created.Address)

	var count int64
	require.NoError(t, gdb.Model(&supplierdomain.Supplier{}).Where("org_id = ?", orgID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestDispatchCreatesCustomer(t *testing.T) {
	d, _, node := newTestDispatcher(t)

	intent := Parse("add customer name Jane Doe")
	out := d.Dispatch(context.Background(), intent, node.Generate())

	require.True(t, out.Exec.OK)
	created, ok := out.Exec.Created.(*customerdomain.Customer)
	require.True(t, ok)
	require.Equal(t, "Jane Doe", created.Name)
}

func TestDispatchCreatesAsset(t *testing.T) {
	d, _, node := newTestDispatcher(t)

	intent := Parse("add asset name Forklift location Warehouse B current_value $12,000")
	out := d.Dispatch(context.Background(), intent, node.Generate())

	require.True(t, out.Exec.OK)
	created, ok := out.Exec.Created.(*assetdomain.Asset)
	require.True(t, ok)
	require.Equal(t, "Forklift", created.Name)
	require.Equal(t, "Warehouse B", *created.Location)
	require.True(t, created.CurrentValue.Equal(decimal.RequireFromString("12000")))
	require.Nil(t, created.PurchaseCost)
	require.NotEmpty(t, created.AssetCode)
}

func TestDispatchUnsupportedModule(t *testing.T) {
	d, _, node := newTestDispatcher(t)

	intent := Intent{
		Module: "accounting.entries",
		Action: ActionCreate,
		Fields: map[string]any{"name": "x"},
		Ready:  true,
	}
	out := d.Dispatch(context.Background(), intent, node.Generate())

	require.False(t, out.Exec.OK)
	require.Equal(t, "Unsupported module/action", out.Exec.Error)
}
