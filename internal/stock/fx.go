package stock

import (
	"github.com/smallbiznis/sentra/internal/stock/service"
	"go.uber.org/fx"
)

var Module = fx.Module("stock.service",
	fx.Provide(service.New),
)
