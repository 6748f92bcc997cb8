package carrental

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/car-rental/internal/cache"
	"github.com/magabrotheeeer/car-rental/internal/config"
	"github.com/magabrotheeeer/car-rental/internal/lib/jwt"
	"github.com/magabrotheeeer/car-rental/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/car-rental/internal/migrations"
	bookingservice "github.com/magabrotheeeer/car-rental/internal/services/booking"
	fleetservice "github.com/magabrotheeeer/car-rental/internal/services/fleet"
	identityservice "github.com/magabrotheeeer/car-rental/internal/services/identity"
	"github.com/magabrotheeeer/car-rental/internal/storage/ledger"
	"github.com/magabrotheeeer/car-rental/internal/storage/postgres"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *postgres.Storage
	rabbitmq *rabbitmq.Publisher
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Интерфейсный nil, чтобы сервис корректно определял отключённую публикацию.
	var receipts bookingservice.ReceiptPublisher
	var publisher *rabbitmq.Publisher
	if cfg.AddressRabbit != "" {
		conn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetReceiptQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
		receipts = publisher
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	docs := ledger.New(db)

	identityService := identityservice.NewIdentityService(docs, jwtMaker)
	fleetService := fleetservice.NewFleetService(docs, cacheRedis, logger)
	bookingService := bookingservice.NewBookingService(docs, cacheRedis, receipts, logger)

	if err := fleetService.Seed(ctx); err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker, db, identityService, fleetService, bookingService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		rabbitmq: publisher,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
