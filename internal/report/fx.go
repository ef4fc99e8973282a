package report

import (
	"github.com/parkwiselabs/parkwise/internal/report/repository"
	"github.com/parkwiselabs/parkwise/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
