package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/mediacard-backend/internal/adapter/postgres"
	lookuprepo "github.com/heartmarshall/mediacard-backend/internal/adapter/postgres/lookup"
	recordrepo "github.com/heartmarshall/mediacard-backend/internal/adapter/postgres/record"
	"github.com/heartmarshall/mediacard-backend/internal/config"
	lookupsvc "github.com/heartmarshall/mediacard-backend/internal/service/lookup"
	recordsvc "github.com/heartmarshall/mediacard-backend/internal/service/record"
	"github.com/heartmarshall/mediacard-backend/internal/transport/middleware"
	"github.com/heartmarshall/mediacard-backend/internal/transport/rest"
)

// collections maps lookup kinds to the URL path segments they are served
// under.
var collections = map[string]lookuprepo.Kind{
	"directors": lookuprepo.Director,
	"studios":   lookuprepo.Studio,
	"labels":    lookuprepo.Label,
	"series":    lookuprepo.Series,
	"genres":    lookuprepo.Genre,
	"idols":     lookuprepo.Idol,
}

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and handlers, and serves HTTP
// until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	lookupHandlers := make(map[string]*rest.LookupHandler, len(collections))
	for path, kind := range collections {
		repo := lookuprepo.New(pool, kind)
		svc := lookupsvc.NewService(logger, kind.Name, repo, txm)
		lookupHandlers[path] = rest.NewLookupHandler(svc, logger)
	}

	recordRepo := recordrepo.New(pool, clockwork.NewRealClock())
	recordService := recordsvc.NewService(logger, recordRepo, txm)
	recordHandler := rest.NewRecordHandler(recordService, logger)

	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	mux := rest.NewRouter(lookupHandlers, recordHandler, healthHandler)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
