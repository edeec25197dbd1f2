package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketIntel/internal/service/ratelimit"
	"MarketIntel/internal/services/embedding"
	"MarketIntel/internal/usecase"
	pkgch "MarketIntel/pkg/clickhouse"
	"MarketIntel/pkg/config"
	xhttp "MarketIntel/pkg/http"
	pkgkafka "MarketIntel/pkg/kafka"
	applogger "MarketIntel/pkg/logger"
	pkgredis "MarketIntel/pkg/redis"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	consumer   *pkgkafka.Consumer
	embedder   *embedding.Pool
	limiter    *ratelimit.Limiter
	events     *usecase.EventProcessor
	redis      *pkgredis.Client
	chClient   *pkgch.Client
}

// New creates a new App instance with all dependencies. consumer is nil
// unless the kafka backend is configured.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	embedder *embedding.Pool,
	limiter *ratelimit.Limiter,
	events *usecase.EventProcessor,
	redis *pkgredis.Client,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		consumer:   consumer,
		embedder:   embedder,
		limiter:    limiter,
		events:     events,
		redis:      redis,
		chClient:   chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.limiter != nil {
		a.limiter.StartCleanup(5 * time.Minute)
	}

	if a.consumer != nil {
		if err := a.consumer.Start(); err != nil {
			a.logger.Error("kafka consumer start error", applogger.Error(err))
			a.shutdown()
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		a.shutdown()
		return err
	}
	a.logger.Info("service started",
		applogger.String("environment", a.cfg.Environment),
		applogger.String("version", a.cfg.Version),
		applogger.String("backend", a.cfg.Backend.Type),
		applogger.Int("port", a.cfg.Server.Port),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	a.shutdown()
	return nil
}

// shutdown stops intake first, then workers, then the clients they use.
func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout+5*time.Second)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.embedder != nil {
		a.embedder.Close()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}

	// flushes pending log batches through the producer closed below
	a.logger.RemoveCollector()

	if a.events != nil {
		a.events.Close()
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
}
