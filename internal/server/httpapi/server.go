package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bibe1s/JRSolisPortfolio/internal/logging"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/auth"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/services"
)

// Server binds the HTTP boundary to the two services and the token verifier.
type Server struct {
	address  string
	verifier *auth.Verifier
	profiles *services.ProfileService
	media    *services.MediaService
	logger   logging.Logger
}

func NewServer(address string, v *auth.Verifier, p *services.ProfileService, m *services.MediaService, l logging.Logger) *Server {
	return &Server{
		address:  address,
		verifier: v,
		profiles: p,
		media:    m,
		logger:   l.With("module", "http_server"),
	}
}

// Routes assembles the chi router. Reads are public; every write route goes
// through RequireAdmin before any handler work.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(RequestID)

	r.Route("/api", func(api chi.Router) {
		api.Get("/profile", s.LoadProfile)

		api.Group(func(g chi.Router) {
			g.Use(s.RequireAdmin)
			g.Post("/profile", s.SaveProfile)
			g.Post("/upload", s.UploadMedia)
		})
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
