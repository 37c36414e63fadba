// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/internal/accountdelivery"
	"github.com/chris7683/CAEAPP/internal/accountrepo"
	"github.com/chris7683/CAEAPP/internal/accountservice"
	"github.com/chris7683/CAEAPP/internal/entrydelivery"
	"github.com/chris7683/CAEAPP/internal/entryrepo"
	"github.com/chris7683/CAEAPP/internal/entryservice"
	"github.com/chris7683/CAEAPP/internal/idempotency"
	"github.com/chris7683/CAEAPP/internal/memstore"
	"github.com/chris7683/CAEAPP/internal/metrics"
	"github.com/chris7683/CAEAPP/internal/middleware"
	"github.com/chris7683/CAEAPP/internal/transferdelivery"
	"github.com/chris7683/CAEAPP/internal/transferrepo"
	"github.com/chris7683/CAEAPP/internal/transferservice"
	"github.com/chris7683/CAEAPP/pkg/configpkg"
	"github.com/chris7683/CAEAPP/pkg/currencypkg"
	"github.com/chris7683/CAEAPP/pkg/moneypkg"
	"github.com/chris7683/CAEAPP/pkg/tokenpkg"
)

// Storage is the persistence the server runs on.
type Storage struct {
	Accounts  accountservice.Repo
	Transfers transferservice.Repo
	Entries   entryservice.Repo
}

// PostgresStorage returns Storage backed by the database.
func PostgresStorage(db *sql.DB) Storage {
	return Storage{
		Accounts:  accountrepo.NewRepoPGS(db),
		Transfers: transferrepo.NewRepoPGS(db),
		Entries:   entryrepo.NewRepoPGS(db),
	}
}

// MemoryStorage returns Storage kept in process memory.
func MemoryStorage(store *memstore.Store) Storage {
	return Storage{
		Accounts:  store.Accounts(),
		Transfers: store.Transfers(),
		Entries:   store.Entries(),
	}
}

// Server holds handlers router and configuration.
type Server struct {
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Option customizes the server.
type Option func(*options)

type options struct {
	rdb            redis.UniversalClient
	recorder       *metrics.Recorder
	metricsHandler http.Handler
}

// WithRedis enables Idempotency-Key support on transfer creation.
func WithRedis(rdb redis.UniversalClient) Option {
	return func(o *options) { o.rdb = rdb }
}

// WithMetrics records transfer metrics with recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(o *options) { o.recorder = recorder }
}

// WithMetricsHandler serves h on GET /metrics for scrapers.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) { o.metricsHandler = h }
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
			validatorsErr = fmt.Errorf("cannot register currency validator: %w", err)
			return
		}

		if err := v.RegisterValidation("amount", moneypkg.ValidAmount); err != nil {
			validatorsErr = fmt.Errorf("cannot register amount validator: %w", err)
		}
	})

	return validatorsErr
}

// New creates Server type with instantiated domains and routes.
func New(storage Storage, logger zerolog.Logger, config configpkg.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	if err := registerValidators(); err != nil {
		return nil, err
	}

	accountService := accountservice.New(storage.Accounts)
	transferService := transferservice.New(storage.Transfers, config.TransferMaxRetries, o.recorder)

	entryService := entryservice.New(storage.Entries)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	entryHandler := entrydelivery.NewHandler(entryService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if o.metricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(o.metricsHandler))
	}

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts", accountHandler.List)

	createTransfer := []gin.HandlerFunc{transferHandler.Create}

	if o.rdb != nil {
		userScope := func(c *gin.Context) string {
			return strconv.FormatInt(middleware.Payload(c).UserID, 10)
		}

		store := idempotency.New(o.rdb, config.IdempotencyTTL)
		createTransfer = append([]gin.HandlerFunc{store.Middleware(userScope)}, createTransfer...)
	}

	authRoutes.POST("/transfers", createTransfer...)
	authRoutes.GET("/transfers", transferHandler.List)
	authRoutes.GET("/transfers/:id", transferHandler.Get)

	authRoutes.GET("/transactions", entryHandler.List)

	server := &Server{
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
	}

	return server, nil
}
