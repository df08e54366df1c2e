//
// CARDFEED
// ========
// A small content feed: list and create articles over a JSON API and a single
// page frontend rendering them as cards.
//
// Also pass the -routes flag to print the generated route docs:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:3000/api/articles
// {"ok":true,"data":[{"id":"6f1c...","title":"Atardecer en la ciudad",...}]}
//
// $ curl -X POST -d '{"title":"Hi","views":"3.7"}' http://localhost:3000/api/articles
// {"ok":true,"data":{"id":"0b9e...","title":"Hi","description":"","author":"Anónimo","views":3,"likes":0,"createdAt":"..."}}
//
// $ curl -X POST -d '{"title":"x"}' http://localhost:3000/api/articles
// {"ok":false,"error":"invalid title"}
//
// $ curl http://localhost:9999/metrics
//
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/docgen"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/cardfeed/internal/article"
	"github.com/SergeyParamoshkin/cardfeed/internal/metrics"
)

const ServiceName = "feed"

const envPrefix = "FEED_"

type App struct {
	sugarLogger *zap.SugaredLogger
	config      Config
	store       article.Store
	metrics     *metrics.Metrics
}

func main() {
	// a missing .env is fine, the process environment is used as is
	_ = godotenv.Load()

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // nolint: errcheck

	if err := run(cfg, logger.Sugar()); err != nil {
		logger.Sugar().Fatalw("feed stopped", "error", err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(cfg Config, sugar *zap.SugaredLogger) error {
	exporter, err := metrics.NewPrometheusExporter()
	if err != nil {
		return fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	a := &App{
		sugarLogger: sugar,
		config:      cfg,
		metrics:     metrics.New(ServiceName),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the docs only need the router, not a live store
	if cfg.Routes {
		r := a.Router(article.NewMemoryStore())
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/cardfeed",
			Intro:       "Routes of the cardfeed API and single page app.",
		}))

		return nil
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	a.store = store

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.Router(store),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	diag := &http.Server{
		Addr:              cfg.DiagAddr,
		Handler:           a.DiagRouter(exporter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 2)
	for _, s := range []*http.Server{srv, diag} {
		s := s
		go func() {
			sugar.Infow("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case err = <-errs:
		sugar.Errorw("server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	for _, s := range []*http.Server{srv, diag} {
		if shutdownErr := s.Shutdown(shutdownCtx); shutdownErr != nil {
			sugar.Errorw("shutdown", "addr", s.Addr, "error", shutdownErr)
		}
	}

	return err
}

// openStore builds the configured backend and connects it.
func (a *App) openStore(ctx context.Context) (article.Store, error) {
	cfg := a.config
	opts := []article.Option{article.WithSeed(cfg.Seed)}

	var store article.Store
	switch cfg.Store {
	case storePostgres:
		pool, err := article.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		store = article.NewPostgresStore(pool, opts...)
	case storeRedis:
		client := article.NewRedisClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		store = article.NewRedisStore(client, cfg.RedisKey, opts...)
	default:
		store = article.NewMemoryStore(opts...)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := store.Connect(connectCtx); err != nil {
		if closeErr := store.Close(); closeErr != nil {
			a.sugarLogger.Errorw("close store", "store", cfg.Store, "error", closeErr)
		}

		return nil, fmt.Errorf("connect %s store: %w", cfg.Store, err)
	}
	a.sugarLogger.Infow("article store connected", "store", cfg.Store, "seed", cfg.Seed)

	return store, nil
}
