package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/auth"
	"github.com/parkwiselabs/parkwise/internal/clock"
	"github.com/parkwiselabs/parkwise/internal/config"
	"github.com/parkwiselabs/parkwise/internal/migration"
	"github.com/parkwiselabs/parkwise/internal/observability"
	"github.com/parkwiselabs/parkwise/internal/parking"
	"github.com/parkwiselabs/parkwise/internal/report"
	"github.com/parkwiselabs/parkwise/internal/seed"
	"github.com/parkwiselabs/parkwise/internal/server"
	"github.com/parkwiselabs/parkwise/internal/space"
	"github.com/parkwiselabs/parkwise/internal/tariff"
	"github.com/parkwiselabs/parkwise/internal/user"
	"github.com/parkwiselabs/parkwise/internal/vehicletype"
	"github.com/parkwiselabs/parkwise/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "parkwise",
		Short:   "Parkwise parking operations server",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		auth.Module,
		vehicletype.Module,
		space.Module,
		tariff.Module,
		parking.Module,
		user.Module,
		report.Module,
		fx.Invoke(runSeed),
		server.Module,
	)
	app.Run()
}

func runSeed(db *gorm.DB, log *zap.Logger) error {
	if err := seed.Ensure(db, seed.Options{
		AdminEmail:    os.Getenv("PARKWISE_BOOTSTRAP_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("PARKWISE_BOOTSTRAP_ADMIN_PASSWORD"),
	}); err != nil {
		return err
	}
	log.Info("reference data ensured")
	return nil
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
