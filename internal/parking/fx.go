package parking

import (
	"github.com/parkwiselabs/parkwise/internal/parking/repository"
	"github.com/parkwiselabs/parkwise/internal/parking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("parking",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
