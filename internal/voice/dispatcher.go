package voice

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	assetdomain "github.com/smallbiznis/sentra/internal/asset/domain"
	customerdomain "github.com/smallbiznis/sentra/internal/customer/domain"
	supplierdomain "github.com/smallbiznis/sentra/internal/supplier/domain"
	"github.com/smallbiznis/sentra/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	errTenantRequired = "tenant required"
	errNameRequired   = "name required"
	errUnsupported    = "Unsupported module/action"
)

type DispatcherParam struct {
	fx.In

	Log       *zap.Logger
	Suppliers supplierdomain.Service
	Customers customerdomain.Service
	Assets    assetdomain.Service
}

// Dispatcher executes ready intents against the owning domain service.
type Dispatcher struct {
	log       *zap.Logger
	suppliers supplierdomain.Service
	customers customerdomain.Service
	assets    assetdomain.Service
}

func NewDispatcher(p DispatcherParam) *Dispatcher {
	return &Dispatcher{
		log:       p.Log.Named("voice.dispatcher"),
		suppliers: p.Suppliers,
		customers: p.Customers,
		assets:    p.Assets,
	}
}

// Dispatch runs at most one create for the intent. A not-ready intent is
// returned unchanged, and a missing tenant short-circuits before any store
// access.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent, orgID snowflake.ID) Intent {
	if !intent.Ready {
		return intent
	}

	if orgID == 0 {
		intent.Exec = &ExecResult{OK: false, Error: errTenantRequired}
		return intent
	}
	ctx = tenantctx.WithIdentity(ctx, tenantctx.Identity{OrgID: orgID})

	name := intent.strField("name")
	if name == nil {
		intent.Exec = &ExecResult{OK: false, Error: errNameRequired}
		return intent
	}

	switch {
	case intent.Module == ModuleSuppliers && intent.Action == ActionCreate:
		created, err := d.suppliers.Create(ctx, supplierdomain.CreateSupplierRequest{
			Name:    *name,
			Phone:   intent.strField("phone"),
			Email:   intent.strField("email"),
			Address: intent.strField("address"),
		})
		intent.Exec = execResult(created, err)

	case intent.Module == ModuleCustomers && intent.Action == ActionCreate:
		created, err := d.customers.Create(ctx, customerdomain.CreateCustomerRequest{
			Name:    *name,
			Phone:   intent.strField("phone"),
			Email:   intent.strField("email"),
			Address: intent.strField("address"),
		})
		intent.Exec = execResult(created, err)

	case intent.Module == ModuleAssets && intent.Action == ActionCreate:
		created, err := d.assets.Create(ctx, assetdomain.CreateAssetRequest{
			Name:         *name,
			Location:     intent.strField("location"),
			PurchaseCost: decimalField(intent, "purchase_cost"),
			CurrentValue: decimalField(intent, "current_value"),
		})
		intent.Exec = execResult(created, err)

	default:
		intent.Exec = &ExecResult{OK: false, Error: errUnsupported}
	}

	if !intent.Exec.OK {
		d.log.Warn("voice dispatch failed",
			zap.String("module", intent.Module),
			zap.String("error", intent.Exec.Error),
		)
	}
	return intent
}

func execResult(created any, err error) *ExecResult {
	if err != nil {
		return &ExecResult{OK: false, Error: err.Error()}
	}
	return &ExecResult{OK: true, Created: created}
}

func decimalField(intent Intent, key string) *decimal.Decimal {
	n := intent.numField(key)
	if n == nil {
		return nil
	}
	d := decimal.NewFromFloat(*n)
	return &d
}
