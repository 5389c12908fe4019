package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ArgPulse/internal/domain/repository"
	"ArgPulse/internal/usecase"
	"ArgPulse/pkg/cache"
	"ArgPulse/pkg/config"
	xhttp "ArgPulse/pkg/http"
	pkgkafka "ArgPulse/pkg/kafka"
	applogger "ArgPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	httpServer *xhttp.Server
	archiver   *usecase.Archiver
	history    repository.HistoryStore
	publisher  repository.PostPublisher
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	cache      cache.Service
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	archiver *usecase.Archiver,
	history repository.HistoryStore,
) *App {
	return &App{
		cfg:        cfg,
		l:          l,
		httpServer: httpServer,
		archiver:   archiver,
		history:    history,
	}
}

// SetConsumer attaches the Kafka consumer and the handler it feeds.
func (a *App) SetConsumer(c *pkgkafka.Consumer, kh pkgkafka.MessageHandler) {
	a.consumer = c
	a.kh = kh
}

// SetPublisher registers the post publisher so it is closed on shutdown.
func (a *App) SetPublisher(p repository.PostPublisher) { a.publisher = p }

// SetCache registers the shared cache so it is closed on shutdown.
func (a *App) SetCache(c cache.Service) { a.cache = c }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.history.Init(ctx); err != nil {
		a.l.Error("history init error", applogger.Error(err))
		return err
	}

	if a.cfg.Archive.Enabled {
		if err := a.archiver.Start(a.cfg.Archive.Schedule); err != nil {
			a.l.Error("archiver start error", applogger.Error(err))
			return err
		}
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		if err := a.consumer.Start(ctx); err != nil {
			a.l.Error("kafka consumer error", applogger.Error(err))
			return err
		}
		a.l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services, transport first.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.cfg.Archive.Enabled {
		a.archiver.Stop(shutdownCtx)
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.l.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if err := a.history.Close(); err != nil {
		a.l.Warn("history close error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
