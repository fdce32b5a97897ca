package router

import (
	"database/sql"
	"net/http"
	"time"

	mem "clinical-sharing/internal/adapters/storage/memory"
	pg "clinical-sharing/internal/adapters/storage/postgres"
	"clinical-sharing/internal/domain/accessgrants"
	"clinical-sharing/internal/domain/patients"
	"clinical-sharing/internal/domain/records"
	"clinical-sharing/internal/domain/timeline"
	"clinical-sharing/internal/domain/users"
	"clinical-sharing/internal/middleware"
	"clinical-sharing/internal/platform/httpresp"
	"clinical-sharing/internal/platform/logger"
	"clinical-sharing/internal/platform/metrics"
	"clinical-sharing/internal/ports/auth"
	"clinical-sharing/internal/ports/capabilities"

	_ "clinical-sharing/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger

	AuthVerifier auth.Verifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: directorio de usuarios (Odin). Si no viene, se usa uno in-memory
	// que aprende de los claims de cada request.
	Users users.Directory

	// Opcional: gate de plan para compartir.
	Capabilities capabilities.Resolver

	// Opcional: si viene, expone /metrics y mide requests, fuentes y grants.
	Metrics *metrics.Metrics

	ExpiringSoonWindow time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier, middleware.WithAuthLogger(log)))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	dir := opts.Users
	if dir == nil {
		memDir := mem.NewUserDirectory()
		r.Use(middleware.TrackUsers(memDir))
		dir = memDir
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpresp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	var (
		patientRepo patients.Repository
		recordRepo  records.Repository
		grantsRepo  accessgrants.Repository
	)
	if opts.DB != nil {
		patientRepo = pg.NewPatientsRepo(opts.DB)
		recordRepo = pg.NewRecordsRepo(opts.DB)
		grantsRepo = pg.NewAccessGrantsRepo(opts.DB)
	} else {
		patientRepo = mem.NewPatientRepo()
		recordRepo = mem.NewRecordRepo()
		grantsRepo = mem.NewAccessGrantsRepo()
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientRepo)

	grantOpts := []accessgrants.Option{
		accessgrants.WithLogger(log),
		accessgrants.WithUserDirectory(dir),
	}
	if opts.Capabilities != nil {
		grantOpts = append(grantOpts, accessgrants.WithCapabilities(opts.Capabilities))
	}
	if opts.Metrics != nil {
		grantOpts = append(grantOpts, accessgrants.WithObserver(opts.Metrics))
	}
	if opts.ExpiringSoonWindow > 0 {
		grantOpts = append(grantOpts, accessgrants.WithExpiringSoonWindow(opts.ExpiringSoonWindow))
	}
	grantsSvc := accessgrants.NewService(grantsRepo, patientsSvc, grantOpts...)
	evaluator := grantsSvc.Evaluator()

	recordsSvc := records.NewService(recordRepo, evaluator)

	tlOpts := []timeline.Option{timeline.WithLogger(log)}
	if opts.Metrics != nil {
		tlOpts = append(tlOpts, timeline.WithObserver(opts.Metrics))
	}
	timelineSvc := timeline.NewService(timeline.NewAdapters(recordRepo, evaluator), tlOpts...)

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc, grantsSvc)
	accessgrants.RegisterRoutes(r, grantsSvc)
	records.RegisterRoutes(r, recordsSvc)
	timeline.RegisterRoutes(r, timelineSvc)

	return r
}
