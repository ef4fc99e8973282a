package user

import (
	"github.com/parkwiselabs/parkwise/internal/user/repository"
	"github.com/parkwiselabs/parkwise/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
