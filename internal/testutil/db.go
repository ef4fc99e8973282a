// Package testutil opens throwaway in-memory databases with the full
// application schema for service-level tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	parkingdomain "github.com/parkwiselabs/parkwise/internal/parking/domain"
	spacedomain "github.com/parkwiselabs/parkwise/internal/space/domain"
	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
	userdomain "github.com/parkwiselabs/parkwise/internal/user/domain"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns an isolated in-memory database carrying the schema,
// including the partial unique indexes the migrations create.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&userdomain.Role{},
		&userdomain.User{},
		&vehicletypedomain.VehicleType{},
		&tariffdomain.Tariff{},
		&spacedomain.Space{},
		&parkingdomain.ParkingRecord{},
		&parkingdomain.Ticket{},
	))

	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_parking_records_open_plate
		 ON parking_records (plate) WHERE status = 'OPEN'`,
	).Error)
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_tariffs_active_per_type
		 ON tariffs (vehicle_type_id) WHERE active`,
	).Error)

	return db
}
