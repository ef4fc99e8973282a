package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/clock"
	"github.com/parkwiselabs/parkwise/internal/observability"
	"github.com/parkwiselabs/parkwise/internal/parking/domain"
	spacedomain "github.com/parkwiselabs/parkwise/internal/space/domain"
	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock

	Repo            domain.Repository
	SpaceRepo       spacedomain.Repository
	TariffRepo      tariffdomain.Repository
	VehicleTypeRepo vehicletypedomain.Repository

	Metrics *observability.Metrics `optional:"true"`
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo            domain.Repository
	spaceRepo       spacedomain.Repository
	tariffRepo      tariffdomain.Repository
	vehicleTypeRepo vehicletypedomain.Repository

	metrics *observability.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("parking.service"),
		genID: p.GenID,
		clock: p.Clock,

		repo:            p.Repo,
		spaceRepo:       p.SpaceRepo,
		tariffRepo:      p.TariffRepo,
		vehicleTypeRepo: p.VehicleTypeRepo,

		metrics: p.Metrics,
	}
}

// Enter opens a parking record: it allocates the lowest-coded available
// space in the vehicle's category, snapshots the active tariff and
// issues a ticket, all in one transaction. Nothing is persisted when any
// precondition fails.
func (s *Service) Enter(ctx context.Context, req domain.EnterRequest) (*domain.EnterResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	if plate == "" {
		return nil, domain.ErrPlateRequired
	}
	if strings.TrimSpace(req.VehicleTypeID) == "" {
		return nil, domain.ErrVehicleTypeRequired
	}
	vehicleTypeID, err := snowflake.ParseString(strings.TrimSpace(req.VehicleTypeID))
	if err != nil {
		return nil, domain.ErrVehicleTypeNotFound
	}

	existing, err := s.repo.FindOpenByPlate(ctx, s.db, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyParked
	}

	vehicleType, err := s.vehicleTypeRepo.FindByID(ctx, s.db, vehicleTypeID)
	if err != nil {
		return nil, err
	}
	if vehicleType == nil {
		return nil, domain.ErrVehicleTypeNotFound
	}

	space, err := s.spaceRepo.FindLowestAvailable(ctx, s.db, vehicleType.Category)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, domain.ErrNoSpaceAvailable
	}

	// Absence of an active tariff is not an error; the record simply
	// carries no snapshot and the exit charge is zero.
	tariff, err := s.tariffRepo.FindActiveByVehicleType(ctx, s.db, vehicleTypeID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	record := domain.ParkingRecord{
		ID:            s.genID.Generate(),
		Plate:         plate,
		VehicleTypeID: vehicleTypeID,
		SpaceID:       space.ID,
		EnteredAt:     now,
		Status:        domain.StatusOpen,
	}
	if tariff != nil {
		record.TariffID = &tariff.ID
	}
	if actorID := parseActor(req.ActorID); actorID != nil {
		record.EntryUserID = actorID
	}

	ticket := domain.Ticket{
		ID:              s.genID.Generate(),
		ParkingRecordID: record.ID,
		IssuedAt:        now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimed, err := s.spaceRepo.MarkOccupied(ctx, tx, space.ID)
		if err != nil {
			return err
		}
		if !claimed {
			// A concurrent entry won the space between selection and
			// the conditional update.
			return spacedomain.ErrAllocationConflict
		}

		if err := s.repo.InsertRecord(ctx, tx, &record); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyParked
			}
			return err
		}

		// Each insert runs under a savepoint (nested Transaction); a
		// bare unique violation would abort the whole transaction on
		// postgres and leave no room for the retry.
		insertTicket := func(at time.Time) error {
			code, err := newTicketCode(at)
			if err != nil {
				return err
			}
			ticket.Code = code
			return tx.Transaction(func(tx *gorm.DB) error {
				return s.repo.InsertTicket(ctx, tx, &ticket)
			})
		}

		err = insertTicket(now)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}

		// ULID collision. Regenerate once before surfacing.
		if err := insertTicket(s.clock.Now(ctx)); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrTicketCodeCollision
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OccupiedSpaces.WithLabelValues(string(space.Category)).Inc()
	}
	s.log.Info("vehicle entered",
		zap.String("record_id", record.ID.String()),
		zap.String("plate", plate),
		zap.String("space", space.Code),
		zap.String("ticket", ticket.Code),
	)

	return &domain.EnterResponse{
		Record: domain.RecordResponse{
			ID:          record.ID.String(),
			Plate:       record.Plate,
			VehicleType: vehicleType.Name,
			SpaceCode:   space.Code,
			EnteredAt:   record.EnteredAt,
			Discount:    record.Discount,
			Status:      record.Status,
		},
		Space: domain.SpaceResponse{
			ID:   space.ID.String(),
			Code: space.Code,
		},
		Ticket: domain.TicketResponse{
			ID:       ticket.ID.String(),
			Code:     ticket.Code,
			IssuedAt: ticket.IssuedAt,
		},
	}, nil
}

// Exit closes the OPEN record found by ticket code (preferred) or plate,
// charges the snapshotted tariff and frees the space. A record can only
// transition OPEN to CLOSED once; a second exit reports not found.
func (s *Service) Exit(ctx context.Context, req domain.ExitRequest) (*domain.ExitResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	ticketCode := strings.TrimSpace(req.TicketCode)
	if plate == "" && ticketCode == "" {
		return nil, domain.ErrLookupKeyRequired
	}
	if req.Discount < 0 {
		return nil, domain.ErrNegativeDiscount
	}

	var (
		row *domain.ExitLookupRow
		err error
	)
	if ticketCode != "" {
		row, err = s.repo.LookupOpenByTicketCode(ctx, s.db, ticketCode)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, domain.ErrNoOpenRecordByTicket
		}
	} else {
		row, err = s.repo.LookupOpenByPlate(ctx, s.db, plate)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, domain.ErrNoOpenRecordByPlate
		}
	}

	now := s.clock.Now(ctx)
	minutes := elapsedMinutes(row.EnteredAt, now)

	var baseAmount int64
	if row.BillingMode != nil && row.UnitPrice != nil {
		baseAmount = calculateCharge(*row.BillingMode, *row.UnitPrice, minutes)
	}

	finalAmount := baseAmount - req.Discount
	if finalAmount < 0 {
		finalAmount = 0
	}

	record := row.ParkingRecord
	record.ExitedAt = &now
	record.TotalMinutes = &minutes
	record.BaseAmount = &baseAmount
	record.Discount = req.Discount
	record.FinalAmount = &finalAmount
	record.Status = domain.StatusClosed
	if actorID := parseActor(req.ActorID); actorID != nil {
		record.ExitUserID = actorID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		closed, err := s.repo.CloseRecord(ctx, tx, &record)
		if err != nil {
			return err
		}
		if !closed {
			// Lost a race against another exit for the same record.
			if ticketCode != "" {
				return domain.ErrNoOpenRecordByTicket
			}
			return domain.ErrNoOpenRecordByPlate
		}
		return s.spaceRepo.MarkAvailable(ctx, tx, record.SpaceID)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OccupiedSpaces.WithLabelValues(row.SpaceCategory).Dec()
	}
	s.log.Info("vehicle exited",
		zap.String("record_id", record.ID.String()),
		zap.String("plate", record.Plate),
		zap.Int64("minutes", minutes),
		zap.Int64("final_amount", finalAmount),
	)

	return &domain.ExitResponse{
		Record:       toRecordResponse(&record, row.VehicleTypeName, "", nil, nil, nil),
		TotalMinutes: minutes,
		BaseAmount:   baseAmount,
		FinalAmount:  finalAmount,
		VehicleType:  row.VehicleTypeName,
	}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.RecordResponse, error) {
	filter := domain.ListFilter{}
	if status := strings.TrimSpace(req.Status); status != "" {
		filter.Status = domain.RecordStatus(status)
	}
	if date := strings.TrimSpace(req.Date); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, domain.ErrInvalidDateFilter
		}
		filter.Day = day
	}

	rows, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RecordResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toRecordResponse(&row.ParkingRecord, row.VehicleTypeName, row.SpaceCode, row.EntryUserName, row.ExitUserName, row.TicketCode))
	}
	return resp, nil
}

func toRecordResponse(rec *domain.ParkingRecord, vehicleType, spaceCode string, entryUser, exitUser, ticketCode *string) domain.RecordResponse {
	return domain.RecordResponse{
		ID:           rec.ID.String(),
		Plate:        rec.Plate,
		VehicleType:  vehicleType,
		SpaceCode:    spaceCode,
		EnteredAt:    rec.EnteredAt,
		ExitedAt:     rec.ExitedAt,
		TotalMinutes: rec.TotalMinutes,
		BaseAmount:   rec.BaseAmount,
		Discount:     rec.Discount,
		FinalAmount:  rec.FinalAmount,
		Status:       rec.Status,
		EntryUser:    entryUser,
		ExitUser:     exitUser,
		TicketCode:   ticketCode,
	}
}

func parseActor(id string) *snowflake.ID {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil
	}
	return &parsed
}
