package auth

import (
	"github.com/smallbiznis/sentra/internal/auth/repository"
	"github.com/smallbiznis/sentra/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
