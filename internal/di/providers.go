package di

import (
	"context"
	"fmt"
	"time"

	"EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	"EconPull/internal/handler/api"
	internalrepo "EconPull/internal/repository"
	"EconPull/internal/services/calendar"
	"EconPull/internal/services/criteria"
	"EconPull/internal/usecase"
	"EconPull/pkg/cache"
	pkgch "EconPull/pkg/clickhouse"
	"EconPull/pkg/config"
	xhttp "EconPull/pkg/http"
	pkgkafka "EconPull/pkg/kafka"
	applogger "EconPull/pkg/logger"
	"EconPull/pkg/metrics"
	"EconPull/pkg/queue"
	"EconPull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Log.Format
	if format == "" {
		format = "console"
	}
	return applogger.New(&applogger.Config{
		Level:  level,
		Format: format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideDatasetStore creates the ClickHouse-backed dataset store and
// ensures its schema exists.
func ProvideDatasetStore(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) (domrepo.DatasetStore, error) {
	store := internalrepo.NewCHDatasetStore(ch, cfg.ClickHouse.Database)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("dataset store init: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the aligned-records Kafka publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.AlignedTopic)
}

// ProvideKafkaConsumer creates the raw-rows consumer, or nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRowsHandler handles pre-extracted table rows off Kafka.
func ProvideRowsHandler(recon *calendar.Reconstructor, store domrepo.DatasetStore, m domrepo.Metrics, cfg *config.Config) *usecase.KafkaRowsHandler {
	return usecase.NewKafkaRowsHandler(cfg.Kafka.RowsTopic, recon, store, m)
}

// ProvidePageSource loads rendered calendar pages from disk.
func ProvidePageSource(cfg *config.Config) *internalrepo.FSPageSource {
	return internalrepo.NewFSPageSource(cfg.Calendar.PagesDir)
}

// ProvidePriceSource loads exported price bars from disk.
func ProvidePriceSource(cfg *config.Config) *internalrepo.CSVPriceSource {
	return internalrepo.NewCSVPriceSource(cfg.Price.Dir)
}

// ProvideCache creates the criteria phrase cache: Redis when enabled,
// in-process otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Redis.Enabled {
		return cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Redis.Addr),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
		)
	}
	return cache.NewMemoryCache(), nil
}

// ProvideDetailSource creates the usual-effect detail client.
func ProvideDetailSource(cfg *config.Config, c cache.Service, l *applogger.Logger) domrepo.DetailSource {
	opts := []criteria.Option{
		criteria.WithRateLimit(cfg.Details.PerSecond, cfg.Details.Burst),
	}
	if c != nil {
		opts = append(opts, criteria.WithCache(c, cfg.Details.CacheTTL))
	}
	return criteria.NewClient(cfg.Details.BaseURL, cfg.Details.Timeout, l, opts...)
}

// ProvideDateTimeResolver builds the resolver with the configured source
// timezone; an empty timezone means the host local zone.
func ProvideDateTimeResolver(cfg *config.Config) (*calendar.DateTimeResolver, error) {
	if cfg.Calendar.Timezone == "" {
		return calendar.NewDateTimeResolver(nil), nil
	}
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Calendar.Timezone, err)
	}
	return calendar.NewDateTimeResolver(loc), nil
}

// ProvideReconstructor creates the row reconstructor.
func ProvideReconstructor(resolver *calendar.DateTimeResolver, m domrepo.Metrics) *calendar.Reconstructor {
	return calendar.NewReconstructor(resolver, m)
}

// ProvideExtractor creates the HTML table extractor.
func ProvideExtractor() *calendar.Extractor {
	return calendar.NewExtractor()
}

// ProvideReconstructUseCase creates the page reconstruction use case.
func ProvideReconstructUseCase(ex *calendar.Extractor, recon *calendar.Reconstructor, cfg *config.Config) *usecase.ReconstructUseCase {
	return usecase.NewReconstructUseCase(ex, recon, cfg.Calendar.Workers)
}

// ProvideEnrichUseCase creates the usual-effect enrichment use case.
func ProvideEnrichUseCase(details domrepo.DetailSource, m domrepo.Metrics) *usecase.EnrichUseCase {
	return usecase.NewEnrichUseCase(details, m)
}

// ProvidePriceAligner creates the event/bar aligner.
func ProvidePriceAligner(cfg *config.Config, m domrepo.Metrics) *usecase.PriceAligner {
	return usecase.NewPriceAligner(domrepo.NormalizePeriod(cfg.Price.Period), m)
}

// ProvidePipeline assembles the batch pipeline.
func ProvidePipeline(
	pages *internalrepo.FSPageSource,
	prices *internalrepo.CSVPriceSource,
	recon *usecase.ReconstructUseCase,
	enrich *usecase.EnrichUseCase,
	aligner *usecase.PriceAligner,
	store domrepo.DatasetStore,
	pub domrepo.Publisher,
	m domrepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Pipeline {
	impacts := make([]models.Impact, 0, len(cfg.Calendar.AllowedImpacts))
	for _, s := range cfg.Calendar.AllowedImpacts {
		impacts = append(impacts, models.Impact(s))
	}
	return usecase.NewPipeline(pages, prices, recon, enrich, aligner, store, pub, m, l, usecase.PipelineParams{
		Pairs:      cfg.Price.Pairs,
		Period:     domrepo.NormalizePeriod(cfg.Price.Period),
		Currencies: cfg.Calendar.AllowedCurrencies,
		Impacts:    impacts,
	})
}

// ProvideJobQueue creates the Redis job queue with the month
// reprocessing job registered, or nil when disabled.
func ProvideJobQueue(
	cfg *config.Config,
	l *applogger.Logger,
	pages *internalrepo.FSPageSource,
	recon *usecase.ReconstructUseCase,
	enrich *usecase.EnrichUseCase,
	store domrepo.DatasetStore,
	m domrepo.Metrics,
	cacheSvc cache.Service,
) *queue.RedisQueue {
	if !cfg.Queue.Enabled || !cfg.Redis.Enabled {
		return nil
	}
	rc, ok := cacheSvc.(*cache.RedisCache)
	if !ok {
		return nil
	}
	rq := queue.NewRedisQueue(l, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, rc.Client())
	rq.RegisterJob(usecase.NewReconstructJob(pages, recon, enrich, store, m, l))
	return rq
}

// ProvideHTTPHandler creates the calendar API handler.
func ProvideHTTPHandler(l *applogger.Logger, store domrepo.DatasetStore, prices *internalrepo.CSVPriceSource) xhttp.Handler {
	return api.NewCalendarEchoHandler(l, store, prices)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	pipeline *usecase.Pipeline,
	consumer *pkgkafka.Consumer,
	rowsHandler *usecase.KafkaRowsHandler,
	jobQueue *queue.RedisQueue,
	httpHandler xhttp.Handler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	var mh pkgkafka.MessageHandler
	if consumer != nil {
		mh = rowsHandler
	}
	app := server.New(cfg, l, pipeline, consumer, mh, jobQueue, httpHandler, chClient)
	app.AddCloser(producer.Close)
	return app
}
