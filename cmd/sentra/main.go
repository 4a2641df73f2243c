package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sentra/internal/config"
	"github.com/smallbiznis/sentra/internal/migration"
	"github.com/smallbiznis/sentra/internal/observability"
	"github.com/smallbiznis/sentra/internal/server"
	"github.com/smallbiznis/sentra/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface; domain modules are registered by server.Module.
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
