// Package domain contains the vehicle-type reference data model.
package domain

import (
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Category is the coarse vehicle class that determines which spaces and
// tariffs apply.
type Category string

const (
	CategoryAuto Category = "AUTO"
	CategoryMoto Category = "MOTO"
)

func (c Category) Valid() bool {
	return c == CategoryAuto || c == CategoryMoto
}

// VehicleType is immutable reference data, seeded at bootstrap.
type VehicleType struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null;uniqueIndex"`
	Description *string      `gorm:"type:text"`
	Category    Category     `gorm:"type:text;not null"`
}

// TableName sets the database table name.
func (VehicleType) TableName() string { return "vehicle_types" }

var ErrNotFound = errors.New("vehicle_type_not_found")

type Response struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Category    Category `json:"category"`
}

func ToResponse(vt *VehicleType) Response {
	return Response{
		ID:          vt.ID.String(),
		Name:        vt.Name,
		Description: vt.Description,
		Category:    vt.Category,
	}
}
