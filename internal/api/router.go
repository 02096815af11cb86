package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/JeanBsh/LocaTrack/internal/api/handlers"
	"github.com/JeanBsh/LocaTrack/internal/api/middleware"
	"github.com/JeanBsh/LocaTrack/internal/auth"
	"github.com/JeanBsh/LocaTrack/internal/cache"
	"github.com/JeanBsh/LocaTrack/internal/config"
	"github.com/JeanBsh/LocaTrack/internal/dashboard"
	"github.com/JeanBsh/LocaTrack/internal/export"
	"github.com/JeanBsh/LocaTrack/internal/imaging"
	"github.com/JeanBsh/LocaTrack/internal/lease"
	"github.com/JeanBsh/LocaTrack/internal/payment"
	"github.com/JeanBsh/LocaTrack/internal/profile"
	"github.com/JeanBsh/LocaTrack/internal/property"
	"github.com/JeanBsh/LocaTrack/internal/queue"
	"github.com/JeanBsh/LocaTrack/internal/storage"
	"github.com/JeanBsh/LocaTrack/internal/tenant"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	store storage.Storage
	jwt   *auth.JWTMiddleware
	qc    *queue.Client
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, store storage.Storage, qc *queue.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		store: store,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		qc:    qc,
	}
}

type statsInvalidator interface {
	Invalidate(ctx context.Context)
}

// invalidateStats drops the cached dashboard after any successful write to
// one of the aggregates the stats are computed from.
func invalidateStats(svc statsInvalidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() < 300 {
				svc.Invalidate(r.Context())
			}
		})
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Image relay (no auth; consumed by the fetch/encode adapter and by
	// browser clients loading remote images through this origin)
	proxyH := handlers.NewProxyImageHandler(time.Duration(rt.cfg.Proxy.TimeoutSeconds) * time.Second)
	r.Get("/api/proxy-image", proxyH.Get)

	// Services
	propertySvc := property.NewService(rt.db)
	tenantSvc := tenant.NewService(rt.db)
	leaseSvc := lease.NewService(rt.db)
	profileSvc := profile.NewService(rt.db)
	paymentSvc := payment.NewService(rt.db)
	dashboardSvc := dashboard.NewService(rt.db, cache.NewCache(rt.redis))

	encoder := imaging.NewEncoder(rt.cfg.Proxy.RelayBaseURL, time.Duration(rt.cfg.Proxy.TimeoutSeconds)*time.Second)
	loader := export.NewLoader(tenantSvc, leaseSvc, propertySvc, profileSvc)
	orchestrator := export.NewOrchestrator(encoder)
	exportStore := export.NewStore(rt.db)

	refreshStats := invalidateStats(dashboardSvc)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		propertyH := handlers.NewPropertyHandler(propertySvc, rt.store)
		r.Route("/properties", func(r chi.Router) {
			r.Use(refreshStats)
			r.Post("/", propertyH.Create)
			r.Get("/", propertyH.List)
			r.Get("/{id}", propertyH.Get)
			r.Put("/{id}", propertyH.Update)
			r.Patch("/{id}/status", propertyH.UpdateStatus)
			r.Delete("/{id}", propertyH.Delete)
			r.Post("/{id}/documents", propertyH.AttachDocument)
			r.Delete("/{id}/documents", propertyH.DetachDocument)
		})

		tenantH := handlers.NewTenantHandler(tenantSvc)
		r.Route("/tenants", func(r chi.Router) {
			r.Use(refreshStats)
			r.Post("/", tenantH.Create)
			r.Get("/", tenantH.List)
			r.Get("/{id}", tenantH.Get)
			r.Put("/{id}", tenantH.Update)
			r.Delete("/{id}", tenantH.Delete)
		})

		leaseH := handlers.NewLeaseHandler(leaseSvc)
		r.Route("/leases", func(r chi.Router) {
			r.Use(refreshStats)
			r.Post("/", leaseH.Create)
			r.Get("/", leaseH.List)
			r.Get("/{id}", leaseH.Get)
			r.Put("/{id}", leaseH.Update)
			r.Delete("/{id}", leaseH.Delete)
		})

		paymentH := handlers.NewPaymentHandler(paymentSvc)
		r.Route("/payments", func(r chi.Router) {
			r.Use(refreshStats)
			r.Post("/", paymentH.Create)
			r.Get("/", paymentH.List)
			r.Delete("/{id}", paymentH.Delete)
		})

		profileH := handlers.NewProfileHandler(profileSvc, rt.store)
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileH.Get)
			r.Put("/", profileH.Upsert)
			r.Put("/{kind}", profileH.UploadImage)
			r.Delete("/{kind}", profileH.DeleteImage)
		})

		docH := handlers.NewDocumentHandler(loader, orchestrator, encoder, rt.cfg.Export.MaxTenants)
		r.Route("/documents", func(r chi.Router) {
			r.Get("/receipt/{tenantID}", docH.Receipt)
			r.Get("/certificate/{tenantID}", docH.Certificate)
			r.Get("/contract/{tenantID}", docH.Contract)
			r.Post("/export", docH.Export)
		})

		exportH := handlers.NewExportHandler(exportStore, rt.qc, rt.store, rt.cfg.Export.MaxTenants)
		r.Route("/exports", func(r chi.Router) {
			r.Post("/", exportH.Create)
			r.Get("/{id}", exportH.Get)
		})

		dashboardH := handlers.NewDashboardHandler(dashboardSvc)
		r.Get("/dashboard", dashboardH.Stats)
	})

	return r
}
