package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/babylonlabs-io/staking-ledger/internal/api/handlers"
	"github.com/babylonlabs-io/staking-ledger/internal/asset"
	"github.com/babylonlabs-io/staking-ledger/internal/config"
	"github.com/babylonlabs-io/staking-ledger/internal/db"
	"github.com/babylonlabs-io/staking-ledger/internal/staking"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	httpServer *http.Server
	handlers   *handlers.Handler
}

func New(
	cfg *config.Config,
	pool staking.PoolInterface,
	db db.DbInterface,
	approver asset.Approver,
) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(tracingMiddleware)
	r.Use(metricsMiddleware)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      r,
	}

	server := &Server{
		httpServer: srv,
		handlers:   handlers.New(pool, db, approver),
	}
	server.SetupRoutes(r)

	return server
}

// Handler exposes the router, mainly for tests.
func (a *Server) Handler() http.Handler {
	return a.httpServer.Handler
}

// Start blocks until the server is shut down.
func (a *Server) Start() error {
	log.Info().Msgf("Starting api server on %s", a.httpServer.Addr)
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

func (a *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down api server")
	return a.httpServer.Shutdown(ctx)
}
