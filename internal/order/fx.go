package order

import (
	"github.com/smallbiznis/sentra/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(service.New),
)
