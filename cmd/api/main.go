package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"clinical-sharing/internal/adapters/auth/odin"
	"clinical-sharing/internal/adapters/capabilities/plansfeatures"
	pg "clinical-sharing/internal/adapters/storage/postgres"
	"clinical-sharing/internal/config"
	"clinical-sharing/internal/platform/logger"
	"clinical-sharing/internal/platform/metrics"
	"clinical-sharing/internal/router"

	"github.com/spf13/cobra"
)

// @title Clinical Sharing API
// @version 1.0
// @description Historial clínico compartido: grants por paciente y timeline unificado.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:           "api",
		Short:         "Clinical sharing API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, log)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema to DB_DSN",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.UseMemory() {
				return errors.New("DB_DSN is required for migrate")
			}

			db, err := pg.Open(cmd.Context(), cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			n, err := pg.Migrate(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			log.Info("db.migrated", map[string]any{"applied": n})
			return nil
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	opts := router.Options{
		Logger:             log,
		Metrics:            metrics.New(),
		ExpiringSoonWindow: cfg.ExpiringSoonWindow,
	}

	var db *sql.DB
	if !cfg.UseMemory() {
		var err error
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		opts.DB = db
	}

	if !cfg.DevAuth() {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.OdinBaseURL,
			APIKey:  cfg.OdinAPIKey,
			Timeout: cfg.UpstreamTimeout,
		})
		if err != nil {
			return err
		}
		opts.AuthVerifier = client
		opts.Users = odin.NewDirectory(client)
	}

	if cfg.AllowAllCapabilities || cfg.PlansBaseURL != "" {
		client, err := plansfeatures.NewClient(plansfeatures.Config{
			BaseURL: cfg.PlansBaseURL,
			APIKey:  cfg.PlansAPIKey,
			Timeout: cfg.UpstreamTimeout,
		})
		if err != nil {
			return err
		}
		opts.Capabilities = plansfeatures.NewResolver(client, cfg.AllowAllCapabilities, cfg.PlansCacheTTL)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server.start", map[string]any{
			"addr":     srv.Addr,
			"env":      cfg.Env,
			"storage":  storageName(cfg),
			"dev_auth": cfg.DevAuth(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server.shutdown", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func storageName(cfg *config.Config) string {
	if cfg.UseMemory() {
		return "memory"
	}
	return "postgres"
}

