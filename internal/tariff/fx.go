package tariff

import (
	"github.com/parkwiselabs/parkwise/internal/tariff/repository"
	"github.com/parkwiselabs/parkwise/internal/tariff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
