package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/garrison-vtt/garrison/internal/api/handler"
	mw "github.com/garrison-vtt/garrison/internal/api/middleware"
	"github.com/garrison-vtt/garrison/internal/asset"
	"github.com/garrison-vtt/garrison/internal/config"
	"github.com/garrison-vtt/garrison/internal/core"
)

// Database is the record store used by the API. *pgxpool.Pool satisfies it.
type Database interface {
	core.DB
	Ping(ctx context.Context) error
}

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	db       Database
	store    *asset.Store
	cfg      *config.Config
	gate     *mw.Gate
}

func NewServer(logger zerolog.Logger, db Database, store *asset.Store, cfg *config.Config) *Server {
	services := core.NewServices(db)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		db:       db,
		store:    store,
		cfg:      cfg,
		gate:     mw.NewGate(services.APIKey),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// Character assets, one read and one write route per kind.
	assets := handler.NewCharacterAsset(s.services.Character, s.gate, s.store, s.logger)
	s.router.Route("/character/foundry/{"+handler.FoundryIDParam+"}", func(r chi.Router) {
		for _, kind := range asset.Kinds(s.cfg.JSONMaxBytes) {
			r.Get("/"+kind.Name, assets.Read(kind))
			r.Put("/"+kind.Name, assets.Write(kind))
		}
	})

	s.router.Group(func(r chi.Router) {
		r.Use(mw.Auth(s.gate))

		user := handler.NewUser()
		r.Get("/user/me", user.Me)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.db.Ping(ctx); err != nil {
		checks["core_db"] = err.Error()
		healthy = false
	} else {
		checks["core_db"] = "ok"
	}

	if err := s.store.Ping(ctx); err != nil {
		checks["asset_store"] = err.Error()
		healthy = false
	} else {
		checks["asset_store"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
