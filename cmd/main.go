// Package main runs the ledger API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"github.com/chris7683/CAEAPP/cmd/httpserver"
	"github.com/chris7683/CAEAPP/db/migration"
	"github.com/chris7683/CAEAPP/internal/memstore"
	"github.com/chris7683/CAEAPP/internal/metrics"
	"github.com/chris7683/CAEAPP/internal/middleware"
	"github.com/chris7683/CAEAPP/pkg/configpkg"
	"github.com/chris7683/CAEAPP/pkg/dbpkg"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

func openStorage(config configpkg.Config, logger zerolog.Logger) (httpserver.Storage, func(), error) {
	if config.DBDriver == configpkg.DriverMemory {
		logger.Warn().Msg("using in-memory store, data is lost on exit")
		return httpserver.MemoryStorage(memstore.New()), func() {}, nil
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		return httpserver.Storage{}, nil, err
	}

	if config.RunMigrations {
		if err := dbpkg.Migrate(db, migration.FS, migration.Dir); err != nil {
			db.Close()
			return httpserver.Storage{}, nil, err
		}

		logger.Info().Msg("db migrated successfully")
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("cannot close database")
		}
	}

	return httpserver.PostgresStorage(db), closeDB, nil
}

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	storage, closeStorage, err := openStorage(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", config.DBDriver).Msg("cannot open storage")
	}
	defer closeStorage()

	meterProvider, metricsHandler, err := metrics.NewPrometheusProvider()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create meter provider")
	}

	otel.SetMeterProvider(meterProvider)

	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("cannot shut down meter provider")
		}
	}()

	recorder, err := metrics.NewRecorder(otel.Meter("github.com/chris7683/CAEAPP"))
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create metrics recorder")
	}

	opts := []httpserver.Option{
		httpserver.WithMetrics(recorder),
		httpserver.WithMetricsHandler(metricsHandler),
	}

	if config.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddress})
		defer rdb.Close()

		opts = append(opts, httpserver.WithRedis(rdb))
	}

	server, err := httpserver.New(storage, logger, config, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("address", config.ServerAddress).Msg("LEDGER API SERVER HAS STARTED")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
