package accounting

import (
	"github.com/smallbiznis/sentra/internal/accounting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("accounting.service",
	fx.Provide(service.New),
)
