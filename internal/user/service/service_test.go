package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/testutil"
	"github.com/parkwiselabs/parkwise/internal/user/domain"
	"github.com/parkwiselabs/parkwise/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.OpenDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	for _, name := range []string{domain.RoleAdministrator, domain.RoleOperator} {
		require.NoError(t, db.Create(&domain.Role{ID: node.Generate(), Name: name}).Error)
	}

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: &testutil.FixedClock{At: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
		Repo:  repository.Provide(),
	})
	return svc, db
}

func TestCreateAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, domain.CreateRequest{
		Name:     "Dana",
		Email:    "Dana@Example.COM",
		Password: "hunter2",
		Role:     domain.RoleOperator,
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", resp.Email)
	assert.Equal(t, domain.RoleOperator, resp.Role)
	assert.True(t, resp.Active)

	row, err := svc.Authenticate(ctx, "dana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Dana", row.Name)
	assert.Equal(t, domain.RoleOperator, row.RoleName)

	_, err = svc.Authenticate(ctx, "dana@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "A", Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "A", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "A", Email: "a@b.c", Password: "x", Role: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "A", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "B", Email: "A@B.C", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSetActiveBlocksLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "A", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	resp, err := svc.SetActive(ctx, domain.SetActiveRequest{ID: created.ID, Active: false})
	require.NoError(t, err)
	assert.False(t, resp.Active)

	_, err = svc.Authenticate(ctx, "a@b.c", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSetActiveUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetActive(context.Background(), domain.SetActiveRequest{ID: "424242", Active: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
