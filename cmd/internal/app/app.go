// Package app wires the PostHub server runtime: config, logging, stores,
// the request pipeline and HTTP routes.
//
// It is intentionally small and deterministic to keep behavior predictable.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"posthub/cmd/identity"
	"posthub/cmd/internal/api"
	"posthub/cmd/internal/auth"
	"posthub/cmd/internal/blog"
	"posthub/cmd/internal/pipeline"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a small app-level lifecycle abstraction.
// It exists to allow DB-backed resources to be closed gracefully.
type Store interface {
	Close(ctx context.Context) error
}

// nopStore is used for in-memory store mode.
type nopStore struct{}

func (nopStore) Close(_ context.Context) error { return nil }

type dbStore struct {
	pool *pgxpool.Pool
}

func (s dbStore) Close(_ context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// App is the PostHub server runtime: it owns the HTTP server wiring and the
// store lifecycle.
type App struct {
	cfg Config
	log Logger

	store Store

	dbPool    *pgxpool.Pool
	dbEnabled bool

	metrics *pipeline.Metrics
	handler *api.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel)
	}

	st, dbPool, dbEnabled, users, posts, err := newStores(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	tokenCfg, err := auth.LoadConfigFromEnv()
	if err != nil {
		_ = st.Close(context.Background())
		return nil, err
	}
	tokens, err := auth.NewPasetoV4LocalManager(tokenCfg)
	if err != nil {
		_ = st.Close(context.Background())
		return nil, err
	}

	handler := api.NewHandler(
		log,
		auth.NewService(users, tokens, log),
		tokens,
		blog.NewPostService(posts, log),
		blog.NewCommentService(posts, log),
	)

	return &App{
		cfg:       cfg,
		log:       log,
		store:     st,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		metrics:   pipeline.NewMetrics(),
		handler:   handler,
	}, nil
}

// Handler builds the full request pipeline around the routed mux.
//
// Order matters: correlation tagging is outermost so every later stage,
// including rate-limit rejections and panic recovery, can stamp the id into
// logs and error bodies.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.handler)

	limiter := pipeline.NewFixedWindowLimiter(a.cfg.RatePermits, a.cfg.RateWindow)

	var h http.Handler = mux
	h = pipeline.WithRecovery(h, a.log)
	h = pipeline.WithRateLimit(h, limiter, a.log)
	h = pipeline.WithCORS(h, a.cfg.CORSAllowedOrigins)
	h = pipeline.WithSecurityHeaders(h)
	h = pipeline.WithMetrics(h, a.metrics)
	h = pipeline.WithRequestLogging(h, a.log)
	h = pipeline.WithCorrelationID(h)
	return h
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.store.Close(shutdownCtx); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// newStores decides between Postgres-backed persistence and in-memory dev
// stores. The pool, when present, is owned here; the stores never close it.
func newStores(ctx context.Context, cfg Config, log Logger) (Store, *pgxpool.Pool, bool, identity.Store, blog.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return nopStore{}, nil, false, identity.NewMemoryStore(), blog.NewMemoryStore(), nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, false, nil, nil, err
	}

	users, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, nil, nil, err
	}
	posts, err := blog.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, nil, nil, err
	}

	log.Info("db.enabled.postgres_store")
	return dbStore{pool: pool}, pool, true, users, posts, nil
}
