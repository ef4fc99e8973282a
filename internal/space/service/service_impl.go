package service

import (
	"context"

	"github.com/parkwiselabs/parkwise/internal/space/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("space.service"),
		repo: p.Repo,
	}
}

// List returns every space with its current occupant plus a per-category
// occupancy summary for the dashboard.
func (s *Service) List(ctx context.Context) (*domain.ListResponse, error) {
	rows, err := s.repo.ListWithOccupants(ctx, s.db)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Summarize(ctx, s.db)
	if err != nil {
		return nil, err
	}

	spaces := make([]domain.SpaceResponse, 0, len(rows))
	for _, row := range rows {
		resp := domain.SpaceResponse{
			ID:            row.ID.String(),
			Code:          row.Code,
			Category:      row.Category,
			Available:     row.Available,
			OccupantPlate: row.OccupantPlate,
		}
		if row.RecordID != nil {
			id := row.RecordID.String()
			resp.RecordID = &id
		}
		spaces = append(spaces, resp)
	}

	return &domain.ListResponse{Spaces: spaces, Summary: summary}, nil
}
