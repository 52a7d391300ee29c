package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hairizuan-noorazman/user-admin/database"
	"github.com/hairizuan-noorazman/user-admin/devserver"
	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/spf13/cobra"
)

var serverConfigFile string

func newServeCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local users API backed by sqlite or mysql",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sc, err := LoadServerConfig(serverConfigFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("seed") {
				sc.Seed = seed
			}

			return runServer(ctx, sc)
		},
	}

	cmd.Flags().StringVarP(&serverConfigFile, "config", "c", "", "server config file path")
	cmd.Flags().BoolVar(&seed, "seed", false, "Load sample users into an empty database")
	return cmd
}

func runServer(ctx context.Context, sc *ServerConfig) error {
	log := logger.New(logger.Config{Level: sc.Log.Level, Format: sc.Log.Format, Output: os.Stdout})
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	db, err := database.Connect(sc.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, sc.Database.Driver); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info(ctx, "database ready", map[string]interface{}{
		"driver": sc.Database.Driver,
	})

	store := devserver.NewGormStore(db, log)

	if sc.Seed {
		n, err := devserver.Seed(ctx, store)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		log.Info(ctx, "seeded users", map[string]interface{}{
			"count": n,
		})
	}

	router := devserver.NewRouter(store, log, devserver.NewMetrics())
	if sc.Photos.Dir != "" {
		devserver.MountPhotos(router, sc.Photos.Dir)
	}

	return devserver.Run(ctx, sc.Server, router, log)
}
