package di

import (
	"context"
	"fmt"
	"time"

	"ArgPulse/internal/domain/models"
	"ArgPulse/internal/domain/repository"
	domsvc "ArgPulse/internal/domain/service"
	"ArgPulse/internal/handler/api"
	internalrepo "ArgPulse/internal/repository"
	"ArgPulse/internal/service/argdatos"
	"ArgPulse/internal/service/news"
	"ArgPulse/internal/services/narrative"
	"ArgPulse/internal/services/pulse"
	"ArgPulse/internal/usecase"
	"ArgPulse/pkg/cache"
	pkgch "ArgPulse/pkg/clickhouse"
	"ArgPulse/pkg/config"
	xhttp "ArgPulse/pkg/http"
	pkgkafka "ArgPulse/pkg/kafka"
	applogger "ArgPulse/pkg/logger"
	"ArgPulse/pkg/metrics"
	"ArgPulse/pkg/server"
)

const userAgent = "ArgPulse/1.0"

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder, or a no-op one when disabled.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New(nil)
}

// ProvideCache creates the cache backing upstream revalidation and the poll.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, error) {
	if cfg.Cache.Type == "memory" {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			cache.WithMemoryCleanup(cfg.Cache.MemoryCleanup),
		), nil
	}

	rcfg := cfg.Cache.Redis
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(rcfg.Host),
		cache.WithRedisPort(rcfg.Port),
		cache.WithRedisPassword(rcfg.Password),
		cache.WithRedisDB(rcfg.DB),
		cache.WithRedisPrefix(rcfg.Prefix),
		cache.WithRedisPool(rcfg.PoolSize, rcfg.MinIdleConns, rcfg.PoolTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis cache connected",
		applogger.String("host", cfg.Cache.Redis.Host),
		applogger.Int("port", cfg.Cache.Redis.Port))

	if cfg.Cache.Type == "layered" {
		return cache.NewLayeredCache(rc,
			cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
			cache.WithLayeredPromoteTTL(cfg.Cache.PromoteTTL),
		), nil
	}
	return rc, nil
}

func upstreamClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.Upstream.Timeout),
		xhttp.WithUserAgent(userAgent),
		xhttp.WithRetry(cfg.Upstream.Retries, cfg.Upstream.RetryBackoff),
	)
}

// ProvideIndicatorSource creates the argentinadatos client.
func ProvideIndicatorSource(cfg *config.Config, c cache.Service, l *applogger.Logger, m repository.Metrics) repository.IndicatorSource {
	rv := cfg.Upstream.Revalidate
	adrs := make([]models.ADRQuote, 0, len(cfg.Upstream.ADRs))
	for _, a := range cfg.Upstream.ADRs {
		adrs = append(adrs, models.ADRQuote{Ticker: a.Ticker, Price: a.Price, Change: a.Change, Trend: models.Trend(a.Trend)})
	}

	return argdatos.NewClient(
		argdatos.WithBaseURL(cfg.Upstream.BaseURL),
		argdatos.WithHTTPClient(upstreamClient(cfg)),
		argdatos.WithCache(c),
		argdatos.WithRateLimit(cfg.Upstream.RequestsPerSec),
		argdatos.WithTTLs(argdatos.TTLs{
			Rates:     rv.Rates,
			History:   rv.History,
			Risk:      rv.Risk,
			Inflation: rv.Inflation,
			Reserves:  rv.Reserves,
			Markets:   rv.Markets,
		}),
		argdatos.WithADRs(adrs),
		argdatos.WithLogger(l),
		argdatos.WithMetrics(m),
	)
}

// ProvideNewsSource creates the headline resolver.
func ProvideNewsSource(cfg *config.Config, c cache.Service, l *applogger.Logger, m repository.Metrics) repository.NewsSource {
	feeds := make([]news.Feed, 0, len(cfg.News.Feeds))
	for _, f := range cfg.News.Feeds {
		feeds = append(feeds, news.Feed{URL: f.URL, Source: f.Source, Category: f.Category, Filter: f.Filter})
	}

	return news.New(
		news.WithGNews(cfg.News.GNewsKey, cfg.News.GNewsURL),
		news.WithNewsAPI(cfg.News.NewsAPIKey, cfg.News.NewsAPIURL),
		news.WithFeeds(feeds),
		news.WithCache(c, cfg.Upstream.Revalidate.News),
		news.WithHTTPClient(upstreamClient(cfg)),
		news.WithLogger(l),
		news.WithMetrics(m),
	)
}

// ProvideClickHouseClient connects to ClickHouse when it backs the history.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.History.Backend != "clickhouse" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgch.NewClient(ctx,
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(4, 2),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideHistoryStore picks the archive backend.
func ProvideHistoryStore(cfg *config.Config, ch *pkgch.Client, l *applogger.Logger) repository.HistoryStore {
	if ch != nil {
		return internalrepo.NewCHHistory(ch, cfg.ClickHouse.Database+"."+cfg.History.Table, l)
	}
	return internalrepo.NewFileHistory(cfg.History.Path, l)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePostPublisher returns nil without a producer so the archiver appends directly.
func ProvidePostPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.PostPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPostPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates the history consumer, or nil when Kafka is disabled.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvidePostEventsHandler appends consumed posts to the history.
func ProvidePostEventsHandler(cfg *config.Config, history repository.HistoryStore, m repository.Metrics) *usecase.PostEventsHandler {
	return usecase.NewPostEventsHandler(cfg.Kafka.Topic, history, m)
}

// ProvidePollStore keeps poll counters in the shared cache.
func ProvidePollStore(cfg *config.Config, c cache.Service) repository.PollStore {
	return internalrepo.NewCachePollStore(c, cfg.Poll.VoteTTL)
}

func ProvideScoreEngine() domsvc.ScoreEngine { return pulse.NewEngine() }

func ProvideNarrativeEngine() domsvc.NarrativeEngine { return narrative.NewEngine() }

// ProvideDashboardUseCase creates the dashboard read model.
func ProvideDashboardUseCase(
	source repository.IndicatorSource,
	newsSource repository.NewsSource,
	history repository.HistoryStore,
	score domsvc.ScoreEngine,
	story domsvc.NarrativeEngine,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(source, newsSource, history, score, story, m, l)
}

// ProvideArchiver creates the nightly archive job.
func ProvideArchiver(
	dash *usecase.DashboardUseCase,
	history repository.HistoryStore,
	publisher repository.PostPublisher,
	l *applogger.Logger,
) *usecase.Archiver {
	return usecase.NewArchiver(dash, history, publisher, l)
}

// ProvideHandlers collects every HTTP route group.
func ProvideHandlers(
	cfg *config.Config,
	l *applogger.Logger,
	dash *usecase.DashboardUseCase,
	poll *usecase.PollUseCase,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewDashboardHandler(l, dash),
		api.NewPollHandler(l, poll),
		api.NewPulseStreamHandler(l, dash, cfg.Server.PulseInterval),
	}
}

// ProvideHTTPServer creates the Echo server. /readyz checks the cache and,
// when it backs the history, ClickHouse.
func ProvideHTTPServer(
	cfg *config.Config,
	handlers []xhttp.Handler,
	l *applogger.Logger,
	c cache.Service,
	ch *pkgch.Client,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, cfg.Server.CORSOrigins...),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.SlowThreshold),
		xhttp.WithLogger(l),
		xhttp.WithCheck("cache", c.Ping),
	}
	if ch != nil {
		opts = append(opts, xhttp.WithCheck("clickhouse", ch.Health))
	}
	return xhttp.NewServer(handlers, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	archiver *usecase.Archiver,
	consumer *pkgkafka.Consumer,
	ph *usecase.PostEventsHandler,
	history repository.HistoryStore,
	publisher repository.PostPublisher,
	c cache.Service,
) *server.App {
	app := server.New(cfg, l, httpServer, archiver, history)
	app.SetCache(c)
	if publisher != nil {
		app.SetPublisher(publisher)
	}
	if consumer != nil {
		app.SetConsumer(consumer, ph)
	}
	return app
}
