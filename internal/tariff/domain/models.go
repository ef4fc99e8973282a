// Package domain contains tariff models. Tariffs are append-only: a new
// active tariff supersedes the prior one, historical rows are kept so
// closed parking records keep pointing at the price they were charged.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// BillingMode selects the formula converting elapsed minutes to a charge.
type BillingMode string

const (
	PerMinute  BillingMode = "PER_MINUTE"
	PerHour    BillingMode = "PER_HOUR"
	PerDay     BillingMode = "PER_DAY"
	Fractional BillingMode = "FRACTIONAL"
)

func (m BillingMode) Valid() bool {
	switch m {
	case PerMinute, PerHour, PerDay, Fractional:
		return true
	default:
		return false
	}
}

type Tariff struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	VehicleTypeID snowflake.ID `gorm:"not null;index"`
	Name          string       `gorm:"type:text;not null"`
	BillingMode   BillingMode  `gorm:"type:text;not null"`
	// UnitPrice is in the minor currency unit.
	UnitPrice int64      `gorm:"not null"`
	Active    bool       `gorm:"not null;default:true"`
	StartDate time.Time  `gorm:"not null"`
	EndDate   *time.Time
}

// TableName sets the database table name.
func (Tariff) TableName() string { return "tariffs" }

var (
	ErrInvalidVehicleType = errors.New("invalid_vehicle_type")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidBillingMode = errors.New("invalid_billing_mode")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")
	ErrPriceImmutable     = errors.New("tariff_price_immutable")
	ErrNotFound           = errors.New("tariff_not_found")
)

type CreateRequest struct {
	VehicleTypeID string      `json:"vehicle_type_id"`
	Name          string      `json:"name"`
	BillingMode   BillingMode `json:"billing_mode"`
	UnitPrice     int64       `json:"unit_price"`
}

// UpdateRequest can rename or (de)activate a tariff. Billing mode and
// unit price are immutable once a tariff exists; changing the price
// means creating a superseding tariff so records keep pointing at the
// price that was in effect when they opened.
type UpdateRequest struct {
	ID          string       `json:"id"`
	Name        *string      `json:"name,omitempty"`
	BillingMode *BillingMode `json:"billing_mode,omitempty"`
	UnitPrice   *int64       `json:"unit_price,omitempty"`
	Active      *bool        `json:"active,omitempty"`
}

type Response struct {
	ID              string      `json:"id"`
	VehicleTypeID   string      `json:"vehicle_type_id"`
	VehicleTypeName string      `json:"vehicle_type_name,omitempty"`
	Name            string      `json:"name"`
	BillingMode     BillingMode `json:"billing_mode"`
	UnitPrice       int64       `json:"unit_price"`
	Active          bool        `json:"active"`
	StartDate       time.Time   `json:"start_date"`
	EndDate         *time.Time  `json:"end_date,omitempty"`
}

// Row is a tariff joined with its vehicle-type name for listings.
type Row struct {
	Tariff
	VehicleTypeName string
}
