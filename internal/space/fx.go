package space

import (
	"github.com/parkwiselabs/parkwise/internal/space/repository"
	"github.com/parkwiselabs/parkwise/internal/space/service"
	"go.uber.org/fx"
)

var Module = fx.Module("space",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
