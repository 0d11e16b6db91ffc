package main

import (
	"context"
	"database/sql"
	"fmt"

	"vet-practice/internal/adapters/auth/apitoken"
	"vet-practice/internal/adapters/auth/introspect"
	pg "vet-practice/internal/adapters/storage/postgres"
	lite "vet-practice/internal/adapters/storage/sqlite"
	"vet-practice/internal/platform/config"
	"vet-practice/internal/platform/logger"
	"vet-practice/internal/ports/auth"

	"gorm.io/gorm"
)

type storage struct {
	DB   *sql.DB
	Gorm *gorm.DB
}

func (s storage) Close() {
	if s.DB != nil {
		_ = s.DB.Close()
	}
	if s.Gorm != nil {
		_ = lite.Close(s.Gorm)
	}
}

func openStorage(ctx context.Context, cfg config.Config, log logger.Logger) (storage, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			return storage{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return storage{}, err
			}
		}
		return storage{DB: db}, nil

	case config.DriverSQLite:
		gdb, err := lite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return storage{}, fmt.Errorf("open sqlite: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := lite.Migrate(gdb); err != nil {
				_ = lite.Close(gdb)
				return storage{}, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		log.Info("using sqlite", map[string]any{"path": cfg.Database.SQLitePath})
		return storage{Gorm: gdb}, nil

	default:
		log.Warn("using in-memory storage; data is lost on restart", nil)
		return storage{}, nil
	}
}

// authVerifier: introspección tiene prioridad sobre el token estático.
// Sin ninguno configurado la API queda abierta.
func authVerifier(cfg config.Config) auth.Verifier {
	switch {
	case cfg.Auth.IntrospectionURL != "":
		return introspect.New(introspect.Config{
			URL:    cfg.Auth.IntrospectionURL,
			APIKey: cfg.Auth.IntrospectionAPIKey,
		})
	case cfg.Auth.APIToken != "":
		return apitoken.New(cfg.Auth.APIToken)
	default:
		return nil
	}
}
