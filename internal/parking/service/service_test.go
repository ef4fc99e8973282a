package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/parking/domain"
	parkingrepository "github.com/parkwiselabs/parkwise/internal/parking/repository"
	spacedomain "github.com/parkwiselabs/parkwise/internal/space/domain"
	spacerepository "github.com/parkwiselabs/parkwise/internal/space/repository"
	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
	tariffrepository "github.com/parkwiselabs/parkwise/internal/tariff/repository"
	"github.com/parkwiselabs/parkwise/internal/testutil"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	vehicletyperepository "github.com/parkwiselabs/parkwise/internal/vehicletype/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var entryTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	clk  *testutil.FixedClock
	node *snowflake.Node

	sedanID snowflake.ID
	motoID  snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.OpenDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := &testutil.FixedClock{At: entryTime}

	sedan := vehicletypedomain.VehicleType{
		ID:       node.Generate(),
		Name:     "Sedan",
		Category: vehicletypedomain.CategoryAuto,
	}
	moto := vehicletypedomain.VehicleType{
		ID:       node.Generate(),
		Name:     "Motorcycle",
		Category: vehicletypedomain.CategoryMoto,
	}
	require.NoError(t, db.Create(&sedan).Error)
	require.NoError(t, db.Create(&moto).Error)

	// Only the sedan carries an active tariff; the motorcycle exercises
	// the no-tariff path.
	require.NoError(t, db.Create(&tariffdomain.Tariff{
		ID:            node.Generate(),
		VehicleTypeID: sedan.ID,
		Name:          "Sedan hourly",
		BillingMode:   tariffdomain.PerHour,
		UnitPrice:     5000,
		Active:        true,
		StartDate:     entryTime.AddDate(0, -1, 0),
	}).Error)

	for _, code := range []string{"A-01", "A-02"} {
		require.NoError(t, db.Create(&spacedomain.Space{
			ID:        node.Generate(),
			Code:      code,
			Category:  vehicletypedomain.CategoryAuto,
			Available: true,
		}).Error)
	}
	require.NoError(t, db.Create(&spacedomain.Space{
		ID:        node.Generate(),
		Code:      "M-01",
		Category:  vehicletypedomain.CategoryMoto,
		Available: true,
	}).Error)

	svc := New(Params{
		DB:              db,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           clk,
		Repo:            parkingrepository.Provide(),
		SpaceRepo:       spacerepository.Provide(),
		TariffRepo:      tariffrepository.Provide(),
		VehicleTypeRepo: vehicletyperepository.Provide(),
	})

	return &fixture{
		svc:     svc,
		db:      db,
		clk:     clk,
		node:    node,
		sedanID: sedan.ID,
		motoID:  moto.ID,
	}
}

func (f *fixture) spaceByCode(t *testing.T, code string) spacedomain.Space {
	t.Helper()
	var s spacedomain.Space
	require.NoError(t, f.db.Where("code = ?", code).First(&s).Error)
	return s
}

func TestEnterAllocatesLowestSpace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: " abc123 ", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	assert.Equal(t, "ABC123", resp.Record.Plate)
	assert.Equal(t, "A-01", resp.Space.Code)
	assert.Equal(t, domain.StatusOpen, resp.Record.Status)
	assert.Equal(t, entryTime, resp.Record.EnteredAt)
	assert.Contains(t, resp.Ticket.Code, "TK-")

	assert.False(t, f.spaceByCode(t, "A-01").Available)

	second, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "XYZ789", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)
	assert.Equal(t, "A-02", second.Space.Code)
}

func TestEnterDuplicatePlate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	_, err = f.svc.Enter(ctx, domain.EnterRequest{Plate: "abc123", VehicleTypeID: f.sedanID.String()})
	assert.ErrorIs(t, err, domain.ErrAlreadyParked)

	// The failed attempt must not consume a space.
	assert.True(t, f.spaceByCode(t, "A-02").Available)
}

func TestEnterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "  ", VehicleTypeID: f.sedanID.String()})
	assert.ErrorIs(t, err, domain.ErrPlateRequired)

	_, err = f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123"})
	assert.ErrorIs(t, err, domain.ErrVehicleTypeRequired)

	_, err = f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: "999999"})
	assert.ErrorIs(t, err, domain.ErrVehicleTypeNotFound)
}

func TestEnterNoSpaceAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, plate := range []string{"CAR001", "CAR002"} {
		_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: plate, VehicleTypeID: f.sedanID.String()})
		require.NoError(t, err)
	}

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "CAR003", VehicleTypeID: f.sedanID.String()})
	assert.ErrorIs(t, err, domain.ErrNoSpaceAvailable)
}

func TestExitByPlateChargesSnapshottedTariff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	f.clk.At = entryTime.Add(90 * time.Minute)
	resp, err := f.svc.Exit(ctx, domain.ExitRequest{Plate: "abc123"})
	require.NoError(t, err)

	assert.Equal(t, int64(90), resp.TotalMinutes)
	assert.Equal(t, int64(10000), resp.BaseAmount)
	assert.Equal(t, int64(10000), resp.FinalAmount)
	assert.Equal(t, domain.StatusClosed, resp.Record.Status)
	assert.Equal(t, "Sedan", resp.VehicleType)

	assert.True(t, f.spaceByCode(t, "A-01").Available)
}

func TestExitChargesEntryTimeTariffAfterSupersession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	// A new tariff activated mid-stay must not touch the open record;
	// its snapshot points at the tariff that was active at entry.
	supersededAt := entryTime.Add(30 * time.Minute)
	require.NoError(t, f.db.Model(&tariffdomain.Tariff{}).
		Where("vehicle_type_id = ? AND active", f.sedanID).
		Updates(map[string]interface{}{"active": false, "end_date": supersededAt}).Error)
	require.NoError(t, f.db.Create(&tariffdomain.Tariff{
		ID:            f.node.Generate(),
		VehicleTypeID: f.sedanID,
		Name:          "Sedan hourly revised",
		BillingMode:   tariffdomain.PerHour,
		UnitPrice:     9999,
		Active:        true,
		StartDate:     supersededAt,
	}).Error)

	f.clk.At = entryTime.Add(60 * time.Minute)
	resp, err := f.svc.Exit(ctx, domain.ExitRequest{Plate: "ABC123"})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.BaseAmount)
	assert.Equal(t, int64(5000), resp.FinalAmount)
}

func TestExitByTicketCodeTakesPrecedence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	enter, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	f.clk.At = entryTime.Add(30 * time.Minute)
	resp, err := f.svc.Exit(ctx, domain.ExitRequest{Plate: "WRONG00", TicketCode: enter.Ticket.Code})
	require.NoError(t, err)

	assert.Equal(t, "ABC123", resp.Record.Plate)
	assert.Equal(t, int64(30), resp.TotalMinutes)
	assert.Equal(t, int64(5000), resp.FinalAmount)
}

func TestExitUnknownKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Exit(ctx, domain.ExitRequest{})
	assert.ErrorIs(t, err, domain.ErrLookupKeyRequired)

	_, err = f.svc.Exit(ctx, domain.ExitRequest{Plate: "NOPE01"})
	assert.ErrorIs(t, err, domain.ErrNoOpenRecordByPlate)

	_, err = f.svc.Exit(ctx, domain.ExitRequest{TicketCode: "TK-UNKNOWN"})
	assert.ErrorIs(t, err, domain.ErrNoOpenRecordByTicket)
}

func TestExitTwiceReportsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	f.clk.At = entryTime.Add(time.Hour)
	_, err = f.svc.Exit(ctx, domain.ExitRequest{Plate: "ABC123"})
	require.NoError(t, err)

	_, err = f.svc.Exit(ctx, domain.ExitRequest{Plate: "ABC123"})
	assert.ErrorIs(t, err, domain.ErrNoOpenRecordByPlate)
}

func TestExitDiscountClampsToZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	f.clk.At = entryTime.Add(30 * time.Minute)
	resp, err := f.svc.Exit(ctx, domain.ExitRequest{Plate: "ABC123", Discount: 8000})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.BaseAmount)
	assert.Equal(t, int64(0), resp.FinalAmount)
}

func TestExitRejectsNegativeDiscount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "ABC123", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	_, err = f.svc.Exit(ctx, domain.ExitRequest{Plate: "ABC123", Discount: -500})
	assert.ErrorIs(t, err, domain.ErrNegativeDiscount)
}

func TestExitWithoutTariffIsFree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	enter, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "MOTO01", VehicleTypeID: f.motoID.String()})
	require.NoError(t, err)
	assert.Equal(t, "M-01", enter.Space.Code)

	f.clk.At = entryTime.Add(3 * time.Hour)
	resp, err := f.svc.Exit(ctx, domain.ExitRequest{Plate: "MOTO01"})
	require.NoError(t, err)

	assert.Equal(t, int64(180), resp.TotalMinutes)
	assert.Equal(t, int64(0), resp.BaseAmount)
	assert.Equal(t, int64(0), resp.FinalAmount)
}

func TestListFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "CAR001", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)
	_, err = f.svc.Enter(ctx, domain.EnterRequest{Plate: "CAR002", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	f.clk.At = entryTime.Add(time.Hour)
	_, err = f.svc.Exit(ctx, domain.ExitRequest{Plate: "CAR001"})
	require.NoError(t, err)

	open, err := f.svc.List(ctx, domain.ListRequest{Status: "OPEN"})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "CAR002", open[0].Plate)

	closed, err := f.svc.List(ctx, domain.ListRequest{Status: "CLOSED"})
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "CAR001", closed[0].Plate)
	require.NotNil(t, closed[0].FinalAmount)
	assert.Equal(t, int64(5000), *closed[0].FinalAmount)

	all, err := f.svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListFiltersByDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Enter(ctx, domain.EnterRequest{Plate: "CAR001", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	f.clk.At = entryTime.AddDate(0, 0, 1)
	_, err = f.svc.Enter(ctx, domain.EnterRequest{Plate: "CAR002", VehicleTypeID: f.sedanID.String()})
	require.NoError(t, err)

	rows, err := f.svc.List(ctx, domain.ListRequest{Date: entryTime.Format("2006-01-02")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CAR001", rows[0].Plate)
}

func TestListRejectsMalformedDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), domain.ListRequest{Date: "10-03-2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateFilter)
}
