package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/electromax/storefront/internal/audit"
	"github.com/electromax/storefront/internal/catalog"
	"github.com/electromax/storefront/internal/clock"
	"github.com/electromax/storefront/internal/config"
	"github.com/electromax/storefront/internal/customer"
	"github.com/electromax/storefront/internal/migration"
	"github.com/electromax/storefront/internal/notification"
	"github.com/electromax/storefront/internal/observability/logger"
	"github.com/electromax/storefront/internal/observability/tracing"
	"github.com/electromax/storefront/internal/seed"
	"github.com/electromax/storefront/internal/server"
	"github.com/electromax/storefront/internal/simulation"
	"github.com/electromax/storefront/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		clock.Module,

		audit.Module,
		catalog.Module,
		customer.Module,
		notification.Module,
		seed.Module,
		simulation.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config, bootstrap *seed.Bootstrap) error {
			if err := migration.Run(conn); err != nil {
				return err
			}

			ctx := context.Background()
			if cfg.Bootstrap.EnsureDemoCatalog {
				if _, _, err := bootstrap.EnsureCatalog(ctx); err != nil {
					return err
				}
			}
			if cfg.Bootstrap.EnsureDemoBuyers {
				if _, err := bootstrap.EnsureBuyers(ctx); err != nil {
					return err
				}
			}
			return nil
		}),

		server.Module,
	)
	app.Run()
}
