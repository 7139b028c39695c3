package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"joseki/internal/adapters"
	"joseki/internal/bootstrap"
	gameDelivery "joseki/internal/delivery/game"
	ownMiddleware "joseki/internal/middleware"
	repo "joseki/internal/repository"
	gameUseCase "joseki/internal/usecase/game"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()

	cfgPath := ".env"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	err := run(logger, cfgPath)
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run returns only after every adapter it opened has been closed.
func run(logger *zap.SugaredLogger, cfgPath string) error {
	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		logger.Errorw("Failed to setup configuration", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	databaseAdapters, err := initDatabaseAdapters(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer databaseAdapters.close(logger)

	gameRepo := repo.NewGameRepository(*cfg, logger, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	if err = gameRepo.EnsureIndexes(ctx); err != nil {
		logger.Errorw("Failed to create indexes", zap.Error(err))
		return err
	}

	handler := gameDelivery.NewGameHandler(logger, gameUseCase.NewGameUseCase(gameRepo, logger, cfg.DefaultBoardSize))

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	handler.Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("Failed to shut down server", zap.Error(err))
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorw("Failed to start server", zap.Error(err))
		return err
	}
	return nil
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (*dataBaseAdapters, error) {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Errorw("Failed to initialize MongoDB", zap.Error(err))
		return nil, err
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Errorw("Failed to initialize Redis", zap.Error(err))
		_ = redisAdapter.Close(context.Background())
		_ = mongoAdapter.Close(context.Background())
		return nil, err
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}, nil
}

func (d *dataBaseAdapters) close(log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.redisAdapter.Close(ctx); err != nil {
		log.Errorw("Failed to close Redis", zap.Error(err))
	}
	if err := d.mongoAdapter.Close(ctx); err != nil {
		log.Errorw("Failed to close MongoDB", zap.Error(err))
	}
}
