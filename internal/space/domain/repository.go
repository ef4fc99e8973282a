package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, space *Space) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Space, error)
	// FindLowestAvailable returns the available space with the smallest
	// code in the category, or nil when the category is full.
	FindLowestAvailable(ctx context.Context, db *gorm.DB, category vehicletypedomain.Category) (*Space, error)
	// MarkOccupied flips available to false only if it is still true,
	// reporting whether the row was actually claimed.
	MarkOccupied(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	MarkAvailable(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListWithOccupants(ctx context.Context, db *gorm.DB) ([]OccupancyRow, error)
	Summarize(ctx context.Context, db *gorm.DB) ([]CategorySummary, error)
	CountOccupied(ctx context.Context, db *gorm.DB, category vehicletypedomain.Category) (int64, error)
}
