package router

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	_ "vet-practice/docs"
	"vet-practice/internal/adapters/imagestore/disk"
	mem "vet-practice/internal/adapters/storage/memory"
	pg "vet-practice/internal/adapters/storage/postgres"
	lite "vet-practice/internal/adapters/storage/sqlite"
	"vet-practice/internal/domain/dashboard"
	"vet-practice/internal/domain/dogs"
	"vet-practice/internal/domain/owners"
	"vet-practice/internal/domain/treatments"
	"vet-practice/internal/middleware"
	"vet-practice/internal/platform/logger"
	"vet-practice/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"
)

type Options struct {
	Logger logger.Logger

	// AuthVerifier nil => API abierta.
	AuthVerifier auth.Verifier

	// Storage: DB (Postgres) tiene prioridad sobre Gorm (SQLite).
	// Sin ninguno, in-memory.
	DB   *sql.DB
	Gorm *gorm.DB

	// ImageDir es obligatorio: ahí se guardan y se sirven las imágenes.
	ImageDir       string
	ImageURLPrefix string // default "/images/"
	MaxImageBytes  int64  // <= 0 usa dogs.DefaultMaxImageBytes
	UploadTimeout  time.Duration
}

type repos struct {
	dogs       dogs.Repository
	owners     owners.Repository
	treatments treatments.Repository
}

func selectRepos(opts Options) repos {
	switch {
	case opts.DB != nil:
		return repos{
			dogs:       pg.NewDogsRepo(opts.DB),
			owners:     pg.NewOwnersRepo(opts.DB),
			treatments: pg.NewTreatmentsRepo(opts.DB),
		}
	case opts.Gorm != nil:
		return repos{
			dogs:       lite.NewDogsRepo(opts.Gorm),
			owners:     lite.NewOwnersRepo(opts.Gorm),
			treatments: lite.NewTreatmentsRepo(opts.Gorm),
		}
	default:
		return repos{
			dogs:       mem.NewDogRepo(),
			owners:     mem.NewOwnerRepo(),
			treatments: mem.NewTreatmentRepo(),
		}
	}
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if strings.TrimSpace(opts.ImageDir) == "" {
		return nil, errors.New("router: ImageDir is required")
	}
	if opts.ImageURLPrefix == "" {
		opts.ImageURLPrefix = "/images/"
	}
	if !strings.HasSuffix(opts.ImageURLPrefix, "/") {
		opts.ImageURLPrefix += "/"
	}

	images, err := disk.New(opts.ImageDir)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(opts.Logger))
	r.Use(middleware.CORS)
	r.Use(metrics.Handler)
	r.Use(middleware.AccessLog(opts.Logger))

	r.Get("/health", healthHandler(opts.DB, opts.Gorm))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle(opts.ImageURLPrefix+"*", staticImages(opts.ImageURLPrefix, images.Dir()))

	rp := selectRepos(opts)

	// Services por módulo
	dogsSvc := dogs.NewService(rp.dogs, images, dogs.Options{
		MaxImageBytes: opts.MaxImageBytes,
		Logger:        opts.Logger,
	})
	ownersSvc := owners.NewService(rp.owners, dogsSvc)
	treatmentsSvc := treatments.NewService(rp.treatments, dogsSvc)
	dashboardSvc := dashboard.NewService(dogsSvc, ownersSvc, treatmentsSvc)

	// Rutas por módulo, detrás de auth si está configurada.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.AuthContext(opts.AuthVerifier, opts.Logger))
		pr.Use(middleware.RequireAuth(opts.AuthVerifier))

		dogs.RegisterRoutes(pr, dogsSvc, dogs.RouteOptions{
			ImageURLPrefix: opts.ImageURLPrefix,
			Logger:         opts.Logger,
			UploadTimeout:  opts.UploadTimeout,
		})
		owners.RegisterRoutes(pr, ownersSvc, owners.RouteOptions{
			ImageURLPrefix: opts.ImageURLPrefix,
			Logger:         opts.Logger,
		})
		treatments.RegisterRoutes(pr, treatmentsSvc, opts.Logger)
		dashboard.RegisterRoutes(pr, dashboardSvc, opts.Logger)
	})

	return r, nil
}

func healthHandler(db *sql.DB, gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if gdb != nil && db == nil {
			if sqlDB, err := gdb.DB(); err == nil {
				db = sqlDB
			}
		}
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// staticImages sirve los archivos del store sin listado de directorio.
func staticImages(prefix, dir string) http.Handler {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, prefix)
		if name == "" || strings.HasSuffix(name, "/") || strings.HasPrefix(name, ".") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fs.ServeHTTP(w, r)
	})
}
