package supplier

import (
	"github.com/smallbiznis/sentra/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(service.New),
)
