package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role_id, u.active, u.created_at, r.name AS role_name`

func (r *repo) Create(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (id, name, email, password_hash, role_id, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.RoleID,
		user.Active,
		user.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Row, error) {
	var row domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT `+userColumns+` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = ?`,
		id,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Row, error) {
	var row domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT `+userColumns+` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.email = ?`,
		email,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Row, error) {
	var rows []domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id ORDER BY u.created_at DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET active = ? WHERE id = ?`,
		active,
		id,
	).Error
}

func (r *repo) CreateRole(ctx context.Context, db *gorm.DB, role *domain.Role) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO roles (id, name, description) VALUES (?, ?, ?)`,
		role.ID,
		role.Name,
		role.Description,
	).Error
}

func (r *repo) FindRoleByName(ctx context.Context, db *gorm.DB, name string) (*domain.Role, error) {
	var role domain.Role
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description FROM roles WHERE name = ?`,
		name,
	).Scan(&role).Error
	if err != nil {
		return nil, err
	}
	if role.ID == 0 {
		return nil, nil
	}
	return &role, nil
}
