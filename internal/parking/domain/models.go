// Package domain contains the parking-record lifecycle: a record opens
// when a vehicle enters, closes exactly once at exit, and is never
// deleted. The tariff reference is snapshotted at entry so later tariff
// changes cannot retroactively change a charge.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
)

type RecordStatus string

const (
	StatusOpen   RecordStatus = "OPEN"
	StatusClosed RecordStatus = "CLOSED"
)

type ParkingRecord struct {
	ID            snowflake.ID  `gorm:"primaryKey"`
	Plate         string        `gorm:"type:text;not null"`
	VehicleTypeID snowflake.ID  `gorm:"not null"`
	SpaceID       snowflake.ID  `gorm:"not null"`
	TariffID      *snowflake.ID
	EnteredAt     time.Time     `gorm:"not null"`
	ExitedAt      *time.Time
	TotalMinutes  *int64
	BaseAmount    *int64
	Discount      int64         `gorm:"not null;default:0"`
	FinalAmount   *int64
	Status        RecordStatus  `gorm:"type:text;not null;default:OPEN"`
	EntryUserID   *snowflake.ID
	ExitUserID    *snowflake.ID
}

// TableName sets the database table name.
func (ParkingRecord) TableName() string { return "parking_records" }

// Ticket is issued atomically with its record at entry and is read-only
// afterward; its code is the alternate lookup key at exit.
type Ticket struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	ParkingRecordID snowflake.ID `gorm:"not null;uniqueIndex"`
	Code            string       `gorm:"type:text;not null;uniqueIndex"`
	IssuedAt        time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (Ticket) TableName() string { return "tickets" }

var (
	ErrPlateRequired        = errors.New("plate_required")
	ErrVehicleTypeRequired  = errors.New("vehicle_type_required")
	ErrVehicleTypeNotFound  = errors.New("vehicle_type_not_found")
	ErrAlreadyParked        = errors.New("vehicle_already_parked")
	ErrNoSpaceAvailable     = errors.New("no_space_available")
	ErrLookupKeyRequired    = errors.New("plate_or_ticket_required")
	ErrNoOpenRecordByPlate  = errors.New("no_open_record_for_plate")
	ErrNoOpenRecordByTicket = errors.New("no_open_record_for_ticket")
	ErrNegativeDiscount     = errors.New("negative_discount")
	ErrInvalidDateFilter    = errors.New("invalid_date_filter")
	ErrTicketCodeCollision  = errors.New("ticket_code_collision")
)

// ExitLookupRow is the open record joined with its snapshotted tariff and
// vehicle-type name, everything the exit workflow needs in one read.
type ExitLookupRow struct {
	ParkingRecord
	BillingMode     *tariffdomain.BillingMode
	UnitPrice       *int64
	VehicleTypeName string
	SpaceCategory   string
}

// RecordRow is a record joined with display names for listings.
type RecordRow struct {
	ParkingRecord
	VehicleTypeName string
	SpaceCode       string
	EntryUserName   *string
	ExitUserName    *string
	TicketCode      *string
}

type ListFilter struct {
	Status RecordStatus
	// Day filters by entry date when non-zero.
	Day    time.Time
	Limit  int
}
