package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/auth/password"
	"github.com/parkwiselabs/parkwise/internal/clock"
	"github.com/parkwiselabs/parkwise/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toResponse(&row))
	}
	return resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if req.Password == "" {
		return nil, domain.ErrInvalidPassword
	}

	roleName := strings.TrimSpace(req.Role)
	if roleName == "" {
		roleName = domain.RoleOperator
	}
	role, err := s.repo.FindRoleByName(ctx, s.db, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		Active:       true,
		CreatedAt:    s.clock.Now(ctx),
	}
	if err := s.repo.Create(ctx, s.db, &user); err != nil {
		return nil, err
	}

	s.log.Info("user created", zap.String("user_id", user.ID.String()), zap.String("role", role.Name))

	return &domain.Response{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      role.Name,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) SetActive(ctx context.Context, req domain.SetActiveRequest) (*domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrNotFound
	}

	row, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.SetActive(ctx, s.db, id, req.Active); err != nil {
		return nil, err
	}

	row.Active = req.Active
	resp := toResponse(row)
	return &resp, nil
}

// Authenticate verifies credentials for an active account. It is the
// identity collaborator behind login; token issuance lives in auth.
func (s *Service) Authenticate(ctx context.Context, email, plaintext string) (*domain.Row, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plaintext == "" {
		return nil, domain.ErrInvalidCredentials
	}

	row, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if row == nil || !row.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(plaintext, row.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return row, nil
}

func toResponse(row *domain.Row) domain.Response {
	return domain.Response{
		ID:        row.ID.String(),
		Name:      row.Name,
		Email:     row.Email,
		Role:      row.RoleName,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}
}
