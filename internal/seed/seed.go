// Package seed provisions the reference data a fresh installation
// needs: roles, default accounts, vehicle types, spaces and tariffs.
// Every helper is idempotent so the seed can run on each startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/auth/password"
	spacedomain "github.com/parkwiselabs/parkwise/internal/space/domain"
	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
	userdomain "github.com/parkwiselabs/parkwise/internal/user/domain"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"gorm.io/gorm"
)

const (
	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@parkwise.local"
	defaultAdminPassword = "admin"

	defaultOperatorName     = "Front Desk"
	defaultOperatorEmail    = "operator@parkwise.local"
	defaultOperatorPassword = "operator"

	autoSpaceCount = 30
	motoSpaceCount = 15
)

// Options overrides the default bootstrap credentials.
type Options struct {
	AdminEmail    string
	AdminPassword string
}

type vehicleTypeSeed struct {
	name        string
	description string
	category    vehicletypedomain.Category
	hourlyPrice int64
}

var vehicleTypeSeeds = []vehicleTypeSeed{
	{name: "Sedan", description: "Standard passenger car", category: vehicletypedomain.CategoryAuto, hourlyPrice: 5000},
	{name: "Pickup", description: "Pickup truck or SUV", category: vehicletypedomain.CategoryAuto, hourlyPrice: 7000},
	{name: "Motorcycle", description: "Two-wheeled vehicle", category: vehicletypedomain.CategoryMoto, hourlyPrice: 3000},
}

// Ensure seeds all reference data in one transaction.
func Ensure(db *gorm.DB, opts Options) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminRole, err := ensureRoleTx(ctx, tx, node, userdomain.RoleAdministrator, "Full access including administration")
		if err != nil {
			return err
		}
		operatorRole, err := ensureRoleTx(ctx, tx, node, userdomain.RoleOperator, "Entry and exit desk operations")
		if err != nil {
			return err
		}

		adminEmail, adminPassword := resolveAdminCredentials(opts)
		if err := ensureUserTx(ctx, tx, node, defaultAdminName, adminEmail, adminPassword, adminRole.ID); err != nil {
			return err
		}
		if err := ensureUserTx(ctx, tx, node, defaultOperatorName, defaultOperatorEmail, defaultOperatorPassword, operatorRole.ID); err != nil {
			return err
		}

		for _, vts := range vehicleTypeSeeds {
			vt, err := ensureVehicleTypeTx(ctx, tx, node, vts)
			if err != nil {
				return err
			}
			if err := ensureTariffTx(ctx, tx, node, vt.ID, vts.name+" hourly", vts.hourlyPrice); err != nil {
				return err
			}
		}

		if err := ensureSpacesTx(ctx, tx, node, "A", autoSpaceCount, vehicletypedomain.CategoryAuto); err != nil {
			return err
		}
		return ensureSpacesTx(ctx, tx, node, "M", motoSpaceCount, vehicletypedomain.CategoryMoto)
	})
}

func resolveAdminCredentials(opts Options) (string, string) {
	email := opts.AdminEmail
	if email == "" {
		email = defaultAdminEmail
	}
	pass := opts.AdminPassword
	if pass == "" {
		pass = defaultAdminPassword
	}
	return email, pass
}

func ensureRoleTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name, description string) (*userdomain.Role, error) {
	var role userdomain.Role
	err := tx.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role = userdomain.Role{
		ID:          node.Generate(),
		Name:        name,
		Description: &description,
	}
	if err := tx.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func ensureUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name, email, passwordRaw string, roleID snowflake.ID) error {
	var user userdomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(passwordRaw)
	if err != nil {
		return err
	}
	user = userdomain.User{
		ID:           node.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		RoleID:       roleID,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&user).Error
}

func ensureVehicleTypeTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, seed vehicleTypeSeed) (*vehicletypedomain.VehicleType, error) {
	var vt vehicletypedomain.VehicleType
	err := tx.WithContext(ctx).Where("name = ?", seed.name).First(&vt).Error
	if err == nil {
		return &vt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	description := seed.description
	vt = vehicletypedomain.VehicleType{
		ID:          node.Generate(),
		Name:        seed.name,
		Description: &description,
		Category:    seed.category,
	}
	if err := tx.WithContext(ctx).Create(&vt).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

func ensureTariffTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, vehicleTypeID snowflake.ID, name string, unitPrice int64) error {
	var count int64
	err := tx.WithContext(ctx).Model(&tariffdomain.Tariff{}).
		Where("vehicle_type_id = ?", vehicleTypeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tariff := tariffdomain.Tariff{
		ID:            node.Generate(),
		VehicleTypeID: vehicleTypeID,
		Name:          name,
		BillingMode:   tariffdomain.PerHour,
		UnitPrice:     unitPrice,
		Active:        true,
		StartDate:     time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&tariff).Error
}

func ensureSpacesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, prefix string, count int, category vehicletypedomain.Category) error {
	var existing int64
	err := tx.WithContext(ctx).Model(&spacedomain.Space{}).
		Where("category = ?", category).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	for i := 1; i <= count; i++ {
		space := spacedomain.Space{
			ID:        node.Generate(),
			Code:      fmt.Sprintf("%s-%02d", prefix, i),
			Category:  category,
			Available: true,
		}
		if err := tx.WithContext(ctx).Create(&space).Error; err != nil {
			return err
		}
	}
	return nil
}
