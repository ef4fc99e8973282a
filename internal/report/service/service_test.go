package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	parkingdomain "github.com/parkwiselabs/parkwise/internal/parking/domain"
	"github.com/parkwiselabs/parkwise/internal/report/domain"
	"github.com/parkwiselabs/parkwise/internal/report/repository"
	"github.com/parkwiselabs/parkwise/internal/testutil"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var reportDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db := testutil.OpenDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: &testutil.FixedClock{At: reportDay.Add(18 * time.Hour)},
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func seedClosedRecord(t *testing.T, db *gorm.DB, node *snowflake.Node, typeID snowflake.ID, exitedAt time.Time, minutes, amount int64) {
	t.Helper()
	rec := parkingdomain.ParkingRecord{
		ID:            node.Generate(),
		Plate:         "P" + node.Generate().String()[:6],
		VehicleTypeID: typeID,
		SpaceID:       node.Generate(),
		EnteredAt:     exitedAt.Add(-time.Duration(minutes) * time.Minute),
		ExitedAt:      &exitedAt,
		TotalMinutes:  &minutes,
		BaseAmount:    &amount,
		FinalAmount:   &amount,
		Status:        parkingdomain.StatusClosed,
	}
	require.NoError(t, db.Create(&rec).Error)
}

func TestSummarizeAggregatesRange(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	sedan := vehicletypedomain.VehicleType{ID: node.Generate(), Name: "Sedan", Category: vehicletypedomain.CategoryAuto}
	moto := vehicletypedomain.VehicleType{ID: node.Generate(), Name: "Motorcycle", Category: vehicletypedomain.CategoryMoto}
	require.NoError(t, db.Create(&sedan).Error)
	require.NoError(t, db.Create(&moto).Error)

	seedClosedRecord(t, db, node, sedan.ID, reportDay.Add(10*time.Hour), 60, 5000)
	seedClosedRecord(t, db, node, sedan.ID, reportDay.Add(12*time.Hour), 120, 10000)
	seedClosedRecord(t, db, node, moto.ID, reportDay.AddDate(0, 0, 1).Add(9*time.Hour), 30, 3000)

	// Outside the range, must not count.
	seedClosedRecord(t, db, node, sedan.ID, reportDay.AddDate(0, 0, 5), 60, 5000)

	// A still-open record counts toward open, never revenue.
	require.NoError(t, db.Create(&parkingdomain.ParkingRecord{
		ID:            node.Generate(),
		Plate:         "OPEN01",
		VehicleTypeID: sedan.ID,
		SpaceID:       node.Generate(),
		EnteredAt:     reportDay.Add(16 * time.Hour),
		Status:        parkingdomain.StatusOpen,
	}).Error)

	resp, err := svc.Summarize(ctx, domain.Request{
		From: "2025-03-10",
		To:   "2025-03-11",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.ClosedCount)
	assert.Equal(t, int64(1), resp.OpenCount)
	assert.Equal(t, int64(18000), resp.Revenue)
	assert.Equal(t, int64(70), resp.AverageMinutes)

	require.Len(t, resp.ByVehicleType, 2)
	assert.Equal(t, "Motorcycle", resp.ByVehicleType[0].VehicleType)
	assert.Equal(t, int64(3000), resp.ByVehicleType[0].Revenue)
	assert.Equal(t, "Sedan", resp.ByVehicleType[1].VehicleType)
	assert.Equal(t, int64(15000), resp.ByVehicleType[1].Revenue)

	require.Len(t, resp.ByDay, 2)
	assert.Equal(t, domain.DayTotal{Day: "2025-03-10", ClosedCount: 2, Revenue: 15000}, resp.ByDay[0])
	assert.Equal(t, domain.DayTotal{Day: "2025-03-11", ClosedCount: 1, Revenue: 3000}, resp.ByDay[1])
}

func TestSummarizeDefaultsToToday(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	sedan := vehicletypedomain.VehicleType{ID: node.Generate(), Name: "Sedan", Category: vehicletypedomain.CategoryAuto}
	require.NoError(t, db.Create(&sedan).Error)
	seedClosedRecord(t, db, node, sedan.ID, reportDay.Add(10*time.Hour), 60, 5000)

	resp, err := svc.Summarize(ctx, domain.Request{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.From)
	assert.Equal(t, "2025-03-10", resp.To)
	assert.Equal(t, int64(1), resp.ClosedCount)
	assert.Equal(t, int64(5000), resp.Revenue)
}

func TestSummarizeInvalidRange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Summarize(ctx, domain.Request{From: "not-a-date"})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.Summarize(ctx, domain.Request{From: "2025-03-12", To: "2025-03-10"})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
