// Package domain contains the parking-space model and occupancy views.
package domain

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
)

// Space availability is the inverse of whether an OPEN parking record
// currently references it.
type Space struct {
	ID        snowflake.ID               `gorm:"primaryKey"`
	Code      string                     `gorm:"type:text;not null;uniqueIndex"`
	Category  vehicletypedomain.Category `gorm:"type:text;not null"`
	Available bool                       `gorm:"not null;default:true"`
}

// TableName sets the database table name.
func (Space) TableName() string { return "spaces" }

var (
	ErrNoneAvailable = errors.New("no_space_available")
	ErrNotFound      = errors.New("space_not_found")
	// ErrAllocationConflict reports that the chosen space was taken by a
	// concurrent entry between selection and the conditional update.
	ErrAllocationConflict = errors.New("space_allocation_conflict")
)

// OccupancyRow is a space joined with the plate of its open record, if any.
type OccupancyRow struct {
	ID            snowflake.ID
	Code          string
	Category      vehicletypedomain.Category
	Available     bool
	OccupantPlate *string
	RecordID      *snowflake.ID
}

// CategorySummary aggregates availability per category.
type CategorySummary struct {
	Category vehicletypedomain.Category `json:"category"`
	Total    int64                      `json:"total"`
	Free     int64                      `json:"free"`
	Occupied int64                      `json:"occupied"`
}

type SpaceResponse struct {
	ID            string                     `json:"id"`
	Code          string                     `json:"code"`
	Category      vehicletypedomain.Category `json:"category"`
	Available     bool                       `json:"available"`
	OccupantPlate *string                    `json:"occupant_plate,omitempty"`
	RecordID      *string                    `json:"record_id,omitempty"`
}

type ListResponse struct {
	Spaces  []SpaceResponse   `json:"spaces"`
	Summary []CategorySummary `json:"summary"`
}
