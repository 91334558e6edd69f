package simulation

import (
	"github.com/electromax/storefront/internal/simulation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("simulation.service",
	fx.Provide(service.NewService),
)
