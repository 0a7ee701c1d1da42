package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/openfaktura/backend/internal/clock"
	"github.com/openfaktura/backend/internal/config"
	"github.com/openfaktura/backend/internal/migration"
	"github.com/openfaktura/backend/internal/observability"
	"github.com/openfaktura/backend/internal/server"
	"github.com/openfaktura/backend/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
