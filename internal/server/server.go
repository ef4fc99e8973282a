// Package server is the HTTP presentation layer: gin handlers, the
// router, auth middleware and the error-to-status mapping.
package server

import (
	"github.com/parkwiselabs/parkwise/internal/auth"
	"github.com/parkwiselabs/parkwise/internal/clock"
	"github.com/parkwiselabs/parkwise/internal/config"
	"github.com/parkwiselabs/parkwise/internal/observability"
	parkingdomain "github.com/parkwiselabs/parkwise/internal/parking/domain"
	reportservice "github.com/parkwiselabs/parkwise/internal/report/service"
	spaceservice "github.com/parkwiselabs/parkwise/internal/space/service"
	tariffservice "github.com/parkwiselabs/parkwise/internal/tariff/service"
	userservice "github.com/parkwiselabs/parkwise/internal/user/service"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
	Tokens *auth.Manager

	Metrics *observability.Metrics `optional:"true"`

	ParkingSvc      parkingdomain.Service
	SpaceSvc        *spaceservice.Service
	TariffSvc       *tariffservice.Service
	UserSvc         *userservice.Service
	ReportSvc       *reportservice.Service
	VehicleTypeRepo vehicletypedomain.Repository
}

type Server struct {
	db     *gorm.DB
	log    *zap.Logger
	cfg    config.Config
	clock  clock.Clock
	tokens *auth.Manager

	metrics *observability.Metrics

	parkingSvc      parkingdomain.Service
	spaceSvc        *spaceservice.Service
	tariffSvc       *tariffservice.Service
	userSvc         *userservice.Service
	reportSvc       *reportservice.Service
	vehicleTypeRepo vehicletypedomain.Repository
}

func New(p Params) *Server {
	return &Server{
		db:     p.DB,
		log:    p.Log.Named("server"),
		cfg:    p.Config,
		clock:  p.Clock,
		tokens: p.Tokens,

		metrics: p.Metrics,

		parkingSvc:      p.ParkingSvc,
		spaceSvc:        p.SpaceSvc,
		tariffSvc:       p.TariffSvc,
		userSvc:         p.UserSvc,
		reportSvc:       p.ReportSvc,
		vehicleTypeRepo: p.VehicleTypeRepo,
	}
}
