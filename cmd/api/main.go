package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vet-practice/internal/platform/config"
	"vet-practice/internal/platform/logger"
	"vet-practice/internal/router"

	"github.com/spf13/cobra"
)

const (
	Version   = "1.0.0"
	BuildTime = "dev"
	appName   = "vet-practice"

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Vet practice HTTP API",
		Long: `API HTTP de la veterinaria: perros (con imagen), dueños y tratamientos.

Sin subcomando arranca el servidor. La configuración se lee de config.yaml
(./config o ./) y de variables de entorno VET_* (ej. VET_DATABASE_DRIVER).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(configPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func load(configPath string) (config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	return cfg, log, nil
}

func serve(configPath string) error {
	cfg, log, err := load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	verifier := authVerifier(cfg)

	h, err := router.NewRouter(router.Options{
		Logger:         log,
		AuthVerifier:   verifier,
		DB:             st.DB,
		Gorm:           st.Gorm,
		ImageDir:       cfg.Images.Dir,
		ImageURLPrefix: cfg.Images.URLPrefix,
		MaxImageBytes:  cfg.Images.MaxBytes(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":   srv.Addr,
			"driver": cfg.Database.Driver,
			"auth":   verifier != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]any{"timeout": shutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func migrate(configPath string) error {
	cfg, log, err := load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("nothing to migrate with the memory driver", nil)
		return nil
	}

	// openStorage ya migra; acá se fuerza aunque auto_migrate esté apagado.
	cfg.Database.AutoMigrate = true
	st, err := openStorage(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	log.Info("schema applied", map[string]any{"driver": cfg.Database.Driver})
	return nil
}
