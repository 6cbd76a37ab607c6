package main

import (
	"HospitalMgmt/cache"
	"HospitalMgmt/config"
	"HospitalMgmt/database"
	"HospitalMgmt/logger"
	"HospitalMgmt/mailer"
	"HospitalMgmt/routes"
	"HospitalMgmt/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hospital",
		Short:        "Hospital management API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *gorm.DB) error {
				return database.RunMigrations(db)
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load starter departments, accounts and catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(db *gorm.DB) error {
				if err := database.RunMigrations(db); err != nil {
					return err
				}
				return database.Seed(cmd.Context(), db)
			})
		},
	}
}

// loadConfig reads the configuration and configures the global logger.
func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg.LogLevel)
	return cfg, nil
}

func withDB(ctx context.Context, fn func(db *gorm.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DBURL == "" {
		return errors.New("missing DB_URL environment variable")
	}
	db, err := database.InitDB(ctx, cfg.DBURL, cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Log.WithError(err).Warn("Failed to close database")
		}
	}()
	return fn(db)
}

func runServer(cfg *config.AppConfig) error {
	db, err := database.InitDB(context.Background(), cfg.DBURL, cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close(db)

	redisClient, err := database.NewRedisClient(database.RedisConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	defer redisClient.Close()
	database.MonitorRedisPool(redisClient)

	tokens, err := utils.NewTokenMaker(cfg.SymmetricKey)
	if err != nil {
		return fmt.Errorf("failed to create token maker: %w", err)
	}

	if !cfg.MailEnabled() {
		logger.Log.Warn("SMTP_HOST not set, invoice emails are disabled")
	}

	handler := routes.SetupRoutes(cfg, db, cache.NewCache(redisClient), tokens, mailer.New(cfg))

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	serverErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		logger.Log.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case <-c:
	case err := <-serverErr:
		return fmt.Errorf("listenAndServe(): %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	logger.Log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	wg.Wait()
	logger.Log.Info("Server exited gracefully")
	return nil
}
