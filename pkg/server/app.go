package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"EconPull/internal/usecase"
	pkgch "EconPull/pkg/clickhouse"
	"EconPull/pkg/config"
	xhttp "EconPull/pkg/http"
	pkgkafka "EconPull/pkg/kafka"
	applogger "EconPull/pkg/logger"
	"EconPull/pkg/queue"
)

// App ties the pipeline, HTTP server, Kafka consumer and job queue
// into one lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	pipeline    *usecase.Pipeline
	consumer    *pkgkafka.Consumer
	rowsHandler pkgkafka.MessageHandler
	jobQueue    *queue.RedisQueue
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	chClient    *pkgch.Client
	closers     []func() error
}

// New creates an App with its dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	pipeline *usecase.Pipeline,
	consumer *pkgkafka.Consumer,
	rowsHandler pkgkafka.MessageHandler,
	jobQueue *queue.RedisQueue,
	httpHandler xhttp.Handler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		pipeline:    pipeline,
		consumer:    consumer,
		rowsHandler: rowsHandler,
		jobQueue:    jobQueue,
		httpHandler: httpHandler,
		chClient:    chClient,
	}
}

// AddCloser registers a resource closed on shutdown.
func (a *App) AddCloser(fn func() error) {
	a.closers = append(a.closers, fn)
}

// RunBatch executes the pipeline once and returns.
func (a *App) RunBatch(ctx context.Context) error {
	defer a.closeResources()
	return a.pipeline.Run(ctx)
}

// RunServe starts the HTTP server, Kafka consumer and job queue, then
// blocks until an interrupt arrives.
func (a *App) RunServe() error {
	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithServerTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithServerLogger(a.logger),
		xhttp.WithMetricsPath(a.metricsPath()),
	)

	if a.consumer != nil && a.rowsHandler != nil {
		a.consumer.RegisterHandler(a.rowsHandler)
		if err := a.consumer.Start(); err != nil {
			return err
		}
		a.logger.Info("kafka consumer started", applogger.String("topic", a.rowsHandler.Topic()))
	}

	if a.jobQueue != nil {
		if err := a.jobQueue.Start(); err != nil {
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) metricsPath() string {
	if !a.cfg.Metrics.Enabled {
		return ""
	}
	if a.cfg.Metrics.Path != "" {
		return a.cfg.Metrics.Path
	}
	return "/metrics"
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.logger.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.jobQueue != nil {
		if err := a.jobQueue.Stop(ctx); err != nil {
			a.logger.Warn("job queue stop error", applogger.Error(err))
		}
	}

	a.closeResources()
	a.logger.Info("shutdown complete")
	return nil
}

func (a *App) closeResources() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.logger.Warn("close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
}
