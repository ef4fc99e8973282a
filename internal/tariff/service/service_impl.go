package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/clock"
	"github.com/parkwiselabs/parkwise/internal/tariff/domain"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Repo            domain.Repository
	VehicleTypeRepo vehicletypedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo            domain.Repository
	vehicleTypeRepo vehicletypedomain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tariff.service"),
		genID: p.GenID,
		clock: p.Clock,

		repo:            p.Repo,
		vehicleTypeRepo: p.VehicleTypeRepo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	rows, err := s.repo.ListWithTypeNames(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toResponse(&row.Tariff, row.VehicleTypeName))
	}
	return resp, nil
}

// Create activates a new tariff for a vehicle type, retiring the prior
// active one in the same transaction so at most one stays active.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	vehicleTypeID, err := snowflake.ParseString(strings.TrimSpace(req.VehicleTypeID))
	if err != nil {
		return nil, domain.ErrInvalidVehicleType
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if !req.BillingMode.Valid() {
		return nil, domain.ErrInvalidBillingMode
	}
	if req.UnitPrice <= 0 {
		return nil, domain.ErrInvalidUnitPrice
	}

	vt, err := s.vehicleTypeRepo.FindByID(ctx, s.db, vehicleTypeID)
	if err != nil {
		return nil, err
	}
	if vt == nil {
		return nil, domain.ErrInvalidVehicleType
	}

	now := s.clock.Now(ctx)
	tariff := domain.Tariff{
		ID:            s.genID.Generate(),
		VehicleTypeID: vehicleTypeID,
		Name:          name,
		BillingMode:   req.BillingMode,
		UnitPrice:     req.UnitPrice,
		Active:        true,
		StartDate:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeactivateActive(ctx, tx, vehicleTypeID, now); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, &tariff)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tariff activated",
		zap.String("tariff_id", tariff.ID.String()),
		zap.String("vehicle_type", vt.Name),
		zap.String("billing_mode", string(tariff.BillingMode)),
		zap.Int64("unit_price", tariff.UnitPrice),
	)

	resp := toResponse(&tariff, vt.Name)
	return &resp, nil
}

// Update renames or (de)activates a tariff. Price and billing mode are
// immutable; a price change goes through Create as a superseding tariff.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrNotFound
	}

	tariff, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if tariff == nil {
		return nil, domain.ErrNotFound
	}

	// Price and billing mode never change in place. Open and closed
	// records reference their tariff row directly, so an in-place edit
	// would rewrite what they were charged.
	if req.BillingMode != nil && *req.BillingMode != tariff.BillingMode {
		return nil, domain.ErrPriceImmutable
	}
	if req.UnitPrice != nil && *req.UnitPrice != tariff.UnitPrice {
		return nil, domain.ErrPriceImmutable
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		tariff.Name = name
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Active != nil && *req.Active && !tariff.Active {
			// Reactivating must retire whichever tariff currently holds
			// the active slot for this vehicle type.
			if err := s.repo.DeactivateActive(ctx, tx, tariff.VehicleTypeID, s.clock.Now(ctx)); err != nil {
				return err
			}
			tariff.Active = true
			tariff.EndDate = nil
		} else if req.Active != nil && !*req.Active {
			tariff.Active = false
		}
		return s.repo.Update(ctx, tx, tariff)
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(tariff, "")
	return &resp, nil
}

func toResponse(t *domain.Tariff, vehicleTypeName string) domain.Response {
	return domain.Response{
		ID:              t.ID.String(),
		VehicleTypeID:   t.VehicleTypeID.String(),
		VehicleTypeName: vehicleTypeName,
		Name:            t.Name,
		BillingMode:     t.BillingMode,
		UnitPrice:       t.UnitPrice,
		Active:          t.Active,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
	}
}
