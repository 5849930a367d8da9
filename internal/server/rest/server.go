// Package rest exposes the travelboard JSON API over HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/services"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	Address        string
	AllowedOrigins []string
	LoginRateLimit float64
	LoginBurst     int
	MaxUploadSize  int64
	// PingTimeout bounds the database probe behind /api/health.
	PingTimeout time.Duration
}

// Services groups everything the handlers call into.
type Services struct {
	Auth        *services.AuthService
	Experiences *services.ContentService[*models.Experience]
	Itineraries *services.ContentService[*models.Itinerary]
	Images      *services.ContentService[*models.Image]
	Updates     *services.ContentService[*models.Update]
}

type Server struct {
	opts    Options
	svc     Services
	db      dbx.Pinger
	logger  logging.Logger
	router  chi.Router
	routes  []string
	started time.Time
}

// NewServer builds the router. db may be nil when no database is
// configured.
func NewServer(opts Options, svc Services, db dbx.Pinger, logger logging.Logger) *Server {
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 2 * time.Second
	}
	s := &Server{
		opts:    opts,
		svc:     svc,
		db:      db,
		logger:  logger.With("module", "rest"),
		started: time.Now(),
	}
	s.router = s.buildRouter()
	s.routes = listRoutes(s.router)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMW := requireAuth(s.svc.Auth, s.logger)
	throttle := rateLimitByIP(s.opts.LoginRateLimit, s.opts.LoginBurst, s.logger)
	ah := &authHandler{svc: s.svc.Auth, logger: s.logger.With("resource", "auth")}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/test", s.index)

		r.Route("/auth", func(r chi.Router) {
			r.With(throttle).Post("/register", ah.register)
			r.With(throttle).Post("/login", ah.login)
			r.With(authMW).Get("/profile", ah.profile)
			r.With(authMW).Get("/me", ah.profile)
			if _, ok := s.svc.Auth.Roster(); ok {
				r.Get("/credentials", ah.credentials)
			}
		})

		mountContent(r, "/experiences", s.svc.Experiences, authMW, s.opts.MaxUploadSize, s.logger)
		mountContent(r, "/itineraries", s.svc.Itineraries, authMW, s.opts.MaxUploadSize, s.logger)
		mountContent(r, "/images", s.svc.Images, authMW, s.opts.MaxUploadSize, s.logger)
		mountContent(r, "/updates", s.svc.Updates, authMW, s.opts.MaxUploadSize, s.logger)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, Envelope{
			Success: false,
			Error:   http.StatusText(http.StatusNotFound),
			Code:    CodeNotFound,
			Message: "route not found",
		})
	})
	return r
}

type healthData struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// health always answers 200; the database field and source tell whether
// writes are currently durable.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	data := healthData{
		Status:    "ok",
		Database:  "disabled",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}
	src := store.SourceMemory
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), s.opts.PingTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn(r.Context(), "database ping failed", "error", err)
			data.Database = "disconnected"
		} else {
			data.Database = "connected"
			src = store.SourceDatabase
		}
	}
	writeOK(w, http.StatusOK, data, src)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "travelboard API is running",
		Data:    map[string]any{"endpoints": s.routes},
	})
}

func listRoutes(r chi.Routes) []string {
	var out []string
	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 && route[len(route)-1] == '/' {
			route = route[:len(route)-1]
		}
		out = append(out, method+" "+route)
		return nil
	})
	sort.Strings(out)
	return out
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(context.Background(), "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
