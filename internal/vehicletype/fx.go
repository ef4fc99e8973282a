package vehicletype

import (
	"github.com/parkwiselabs/parkwise/internal/vehicletype/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("vehicletype",
	fx.Provide(repository.Provide),
)
