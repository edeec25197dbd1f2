package di

import (
	"context"
	"fmt"
	"time"

	"MarketIntel/internal/domain/repository"
	"MarketIntel/internal/handler/api"
	internalrepo "MarketIntel/internal/repository"
	icache "MarketIntel/internal/service/cache"
	"MarketIntel/internal/service/ratelimit"
	"MarketIntel/internal/services/embedding"
	"MarketIntel/internal/usecase"
	pkgch "MarketIntel/pkg/clickhouse"
	"MarketIntel/pkg/config"
	xhttp "MarketIntel/pkg/http"
	pkgkafka "MarketIntel/pkg/kafka"
	applogger "MarketIntel/pkg/logger"
	"MarketIntel/pkg/metrics"
	pkgredis "MarketIntel/pkg/redis"
	"MarketIntel/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRedisClient creates the Redis client backing competitors, trends and the cache.
func ProvideRedisClient(cfg *config.Config) (*pkgredis.Client, error) {
	client, err := pkgredis.NewClient(
		pkgredis.WithHost(cfg.Redis.Host),
		pkgredis.WithPort(cfg.Redis.Port),
		pkgredis.WithPassword(cfg.Redis.Password),
		pkgredis.WithDB(cfg.Redis.DB),
		pkgredis.WithPool(cfg.Redis.PoolSize, cfg.Redis.MinIdleConns, cfg.Redis.PoolTimeout),
		pkgredis.WithPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis client: %w", err)
	}
	return client, nil
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the schema.
// The connection stays on the default database; tables are always qualified.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase("default"),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, pkgch.Schema(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend or
// the log collector needs one, and nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != usecase.BackendKafka && !cfg.Log.Collector.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithAutoCreateTopics(cfg.Environment == "development"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideKafkaPublisher wraps the producer, nil when there is none.
func ProvideKafkaPublisher(producer *pkgkafka.Producer, cfg *config.Config) *internalrepo.KafkaPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topics.Mentions, cfg.Kafka.Topics.Reports)
}

// ProvideEventPublisher exposes the Kafka publisher as the domain Publisher.
func ProvideEventPublisher(pub *internalrepo.KafkaPublisher) repository.Publisher {
	if pub == nil {
		return nil
	}
	return pub
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

func ProvideCompetitorStore(client *pkgredis.Client) repository.CompetitorStore {
	return internalrepo.NewRedisCompetitorStore(client)
}

func ProvideTrendStore(client *pkgredis.Client) repository.TrendStore {
	return internalrepo.NewRedisTrendStore(client)
}

func ProvideMentionStore(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.MentionStore {
	store := internalrepo.NewCHMentionStore(ch.DB(), cfg.ClickHouse.Database)
	store.SetLogger(l)
	return store
}

func ProvideReportStore(ch *pkgch.Client, cfg *config.Config) repository.ReportStore {
	return internalrepo.NewCHReportStore(ch.DB(), cfg.ClickHouse.Database)
}

// ProvideEmbeddingPool loads the embedding model and fails startup if it
// does not answer.
func ProvideEmbeddingPool(cfg *config.Config, l *applogger.Logger) (*embedding.Pool, error) {
	e, err := embedding.NewHTTPEmbedder(cfg.Embedding, l)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Embedding.Timeout+10*time.Second)
	defer cancel()
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return embedding.NewPool(e, cfg.Embedding.Workers, cfg.Embedding.QueueSize, l), nil
}

// ProvideEventProcessor routes mention and report writes to the configured backend.
func ProvideEventProcessor(
	pub repository.Publisher,
	mentions repository.MentionStore,
	reports repository.ReportStore,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.EventProcessor {
	return usecase.NewEventProcessor(pub, mentions, reports, metrics, cfg.Backend.Type)
}

func ProvideMarketAnalyzer(
	competitors repository.CompetitorStore,
	trends repository.TrendStore,
	mentions repository.MentionStore,
	pool *embedding.Pool,
	events *usecase.EventProcessor,
	metrics repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.MarketAnalyzer {
	return usecase.NewMarketAnalyzer(competitors, trends, mentions, pool, events, metrics, l, cfg.Analysis.MentionLimit)
}

func ProvideCompetitorService(store repository.CompetitorStore, events *usecase.EventProcessor) *usecase.CompetitorService {
	return usecase.NewCompetitorService(store, events)
}

// ProvideCache backs the trends response cache with a short-lived local
// layer over Redis.
func ProvideCache(client *pkgredis.Client) icache.BytesCache {
	return icache.NewLayeredCache(icache.NewTTLCache(), icache.NewRedisCache(client), 30*time.Second)
}

func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Analysis.RateLimit.Requests, cfg.Analysis.RateLimit.Window)
}

// ProvideHandlers assembles every HTTP route group.
func ProvideHandlers(
	cfg *config.Config,
	l *applogger.Logger,
	competitors *usecase.CompetitorService,
	analyzer *usecase.MarketAnalyzer,
	cache icache.BytesCache,
	limiter *ratelimit.Limiter,
	redis *pkgredis.Client,
	ch *pkgch.Client,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewHealthHandler(l, cfg.Version,
			api.HealthCheck{Name: "redis", Check: redis.Health},
			api.HealthCheck{Name: "clickhouse", Check: ch.Health},
		),
		api.NewCompetitorsHandler(l, competitors),
		api.NewAnalysisHandler(l, analyzer, cache, limiter, cfg.Analysis.TrendsCacheTTL),
	}
}

func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, handlers []xhttp.Handler) *xhttp.Server {
	return xhttp.NewServer(l, handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORSOrigins(cfg.Server.CORSOrigins),
		xhttp.WithMetricsPath(cfg.Metrics.Path),
	)
}

// ProvideKafkaConsumer creates the consumer that persists published mentions
// and reports into ClickHouse. It is nil unless backend.type is kafka.
func ProvideKafkaConsumer(
	cfg *config.Config,
	l *applogger.Logger,
	mentions repository.MentionStore,
	reports repository.ReportStore,
	metrics repository.Metrics,
) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != usecase.BackendKafka {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.RegisterHandler(usecase.NewKafkaMentionsHandler(cfg.Kafka.Topics.Mentions, mentions, metrics))
	consumer.RegisterHandler(usecase.NewKafkaReportsHandler(cfg.Kafka.Topics.Reports, reports, metrics))
	return consumer, nil
}

// ProvideApp creates the application server and attaches the log collector.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	pool *embedding.Pool,
	limiter *ratelimit.Limiter,
	events *usecase.EventProcessor,
	pub *internalrepo.KafkaPublisher,
	redis *pkgredis.Client,
	ch *pkgch.Client,
) *server.App {
	if cfg.Log.Collector.Enabled && pub != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Log.Collector.Interval,
			CountThreshold: cfg.Log.Collector.Threshold,
			Topic:          cfg.Log.Collector.Topic,
			Publisher:      pub,
		})
	}
	return server.New(cfg, l, httpServer, consumer, pool, limiter, events, redis, ch)
}

// TrendTool is what the trends import command needs.
type TrendTool struct {
	Store repository.TrendStore
	Redis *pkgredis.Client
}

func ProvideTrendTool(store repository.TrendStore, redis *pkgredis.Client) *TrendTool {
	return &TrendTool{Store: store, Redis: redis}
}
