package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/tariff/domain"
	"github.com/parkwiselabs/parkwise/internal/tariff/repository"
	"github.com/parkwiselabs/parkwise/internal/testutil"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	vehicletyperepository "github.com/parkwiselabs/parkwise/internal/vehicletype/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, snowflake.ID) {
	t.Helper()

	db := testutil.OpenDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sedan := vehicletypedomain.VehicleType{
		ID:       node.Generate(),
		Name:     "Sedan",
		Category: vehicletypedomain.CategoryAuto,
	}
	require.NoError(t, db.Create(&sedan).Error)

	svc := New(Params{
		DB:              db,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           &testutil.FixedClock{At: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
		Repo:            repository.Provide(),
		VehicleTypeRepo: vehicletyperepository.Provide(),
	})
	return svc, db, sedan.ID
}

func activeTariffs(t *testing.T, db *gorm.DB, vehicleTypeID snowflake.ID) []domain.Tariff {
	t.Helper()
	var rows []domain.Tariff
	require.NoError(t, db.Where("vehicle_type_id = ? AND active", vehicleTypeID).Find(&rows).Error)
	return rows
}

func TestCreateSupersedesActiveTariff(t *testing.T) {
	svc, db, sedanID := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateRequest{
		VehicleTypeID: sedanID.String(),
		Name:          "Launch hourly",
		BillingMode:   domain.PerHour,
		UnitPrice:     5000,
	})
	require.NoError(t, err)
	assert.True(t, first.Active)

	second, err := svc.Create(ctx, domain.CreateRequest{
		VehicleTypeID: sedanID.String(),
		Name:          "Revised hourly",
		BillingMode:   domain.PerHour,
		UnitPrice:     6000,
	})
	require.NoError(t, err)
	assert.True(t, second.Active)

	active := activeTariffs(t, db, sedanID)
	require.Len(t, active, 1)
	assert.Equal(t, "Revised hourly", active[0].Name)

	// The superseded tariff is retained with its end date stamped.
	var retired domain.Tariff
	require.NoError(t, db.Where("name = ?", "Launch hourly").First(&retired).Error)
	assert.False(t, retired.Active)
	assert.NotNil(t, retired.EndDate)
}

func TestCreateValidation(t *testing.T) {
	svc, _, sedanID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{VehicleTypeID: "bogus", Name: "x", BillingMode: domain.PerHour, UnitPrice: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidVehicleType)

	_, err = svc.Create(ctx, domain.CreateRequest{VehicleTypeID: sedanID.String(), Name: "  ", BillingMode: domain.PerHour, UnitPrice: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{VehicleTypeID: sedanID.String(), Name: "x", BillingMode: "WEEKLY", UnitPrice: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidBillingMode)

	_, err = svc.Create(ctx, domain.CreateRequest{VehicleTypeID: sedanID.String(), Name: "x", BillingMode: domain.PerHour, UnitPrice: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidUnitPrice)
}

func TestUpdateReactivationRetiresCurrentHolder(t *testing.T) {
	svc, db, sedanID := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateRequest{
		VehicleTypeID: sedanID.String(),
		Name:          "First",
		BillingMode:   domain.PerHour,
		UnitPrice:     5000,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{
		VehicleTypeID: sedanID.String(),
		Name:          "Second",
		BillingMode:   domain.PerHour,
		UnitPrice:     6000,
	})
	require.NoError(t, err)

	active := true
	resp, err := svc.Update(ctx, domain.UpdateRequest{ID: first.ID, Active: &active})
	require.NoError(t, err)
	assert.True(t, resp.Active)

	rows := activeTariffs(t, db, sedanID)
	require.Len(t, rows, 1)
	assert.Equal(t, "First", rows[0].Name)
}

func TestUpdatePriceAndModeImmutable(t *testing.T) {
	svc, db, sedanID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{
		VehicleTypeID: sedanID.String(),
		Name:          "Hourly",
		BillingMode:   domain.PerHour,
		UnitPrice:     5000,
	})
	require.NoError(t, err)

	price := int64(9999)
	_, err = svc.Update(ctx, domain.UpdateRequest{ID: created.ID, UnitPrice: &price})
	assert.ErrorIs(t, err, domain.ErrPriceImmutable)

	mode := domain.PerDay
	_, err = svc.Update(ctx, domain.UpdateRequest{ID: created.ID, BillingMode: &mode})
	assert.ErrorIs(t, err, domain.ErrPriceImmutable)

	// Echoing the current values back is not an edit.
	name := "Hourly renamed"
	sameMode := domain.PerHour
	samePrice := int64(5000)
	resp, err := svc.Update(ctx, domain.UpdateRequest{ID: created.ID, Name: &name, BillingMode: &sameMode, UnitPrice: &samePrice})
	require.NoError(t, err)
	assert.Equal(t, "Hourly renamed", resp.Name)

	var stored domain.Tariff
	require.NoError(t, db.Where("id = ?", created.ID).First(&stored).Error)
	assert.Equal(t, int64(5000), stored.UnitPrice)
	assert.Equal(t, domain.PerHour, stored.BillingMode)
}

func TestUpdateUnknownTariff(t *testing.T) {
	svc, _, _ := newTestService(t)

	price := int64(100)
	_, err := svc.Update(context.Background(), domain.UpdateRequest{ID: "424242", UnitPrice: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
