package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/budgetly/budgetly/internal/config"
	"github.com/budgetly/budgetly/internal/database"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *pgxpool.Pool
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	if cfg.Auth.Secret == "" {
		return nil, errors.New("auth.secret is not configured, set BUDGETLY_AUTH_SECRET")
	}

	// DB + migrations
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	deps := BuildDependencies(db, cfg)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, deps: deps, router: r, srv: srv}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down and releases connections.
func (a *Application) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		a.close()
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := a.srv.Shutdown(shutdownCtx)
	a.close()
	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped gracefully")
	return nil
}

func (a *Application) close() {
	if a.deps.Redis != nil {
		if err := a.deps.Redis.Close(); err != nil {
			log.Warnf("failed to close redis client: %v", err)
		}
	}
	a.db.Close()
}
