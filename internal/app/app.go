package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/knightempire/e-commerce-frontend/internal/checkout"
	"github.com/knightempire/e-commerce-frontend/internal/config"
	"github.com/knightempire/e-commerce-frontend/internal/event"
	handler "github.com/knightempire/e-commerce-frontend/internal/handler/http"
	"github.com/knightempire/e-commerce-frontend/internal/pricing"
	"github.com/knightempire/e-commerce-frontend/internal/promo"
	"github.com/knightempire/e-commerce-frontend/internal/repository"
	boltrepo "github.com/knightempire/e-commerce-frontend/internal/repository/bolt"
	"github.com/knightempire/e-commerce-frontend/internal/repository/memory"
	redisrepo "github.com/knightempire/e-commerce-frontend/internal/repository/redis"
	"github.com/knightempire/e-commerce-frontend/internal/service"
	"github.com/knightempire/e-commerce-frontend/pkg/database"
	"github.com/knightempire/e-commerce-frontend/pkg/health"
	"github.com/knightempire/e-commerce-frontend/pkg/httpclient"
	pkgkafka "github.com/knightempire/e-commerce-frontend/pkg/kafka"
	"github.com/knightempire/e-commerce-frontend/pkg/tracing"
)

const serviceName = "storefront-service"

// sweepInterval is how often idle sessions are looked for.
const sweepInterval = time.Minute

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	sessions       *service.Sessions
	closers        []namedCloser
	tracerShutdown tracing.ShutdownFunc
	httpServer     *http.Server
}

type namedCloser struct {
	name   string
	closer io.Closer
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	healthHandler := health.NewHandler()

	repo, closer, err := openRepository(ctx, cfg, logger)
	if err != nil {
		a.close()
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, namedCloser{name: cfg.StorageDriver, closer: closer})
	}
	healthHandler.Register("storage", repo.Ping)

	// Event publishing.
	var publisher event.Publisher = event.Discard
	if cfg.EventsEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = producer
		a.closers = append(a.closers, namedCloser{name: "kafka producer", closer: producer})
		healthHandler.Register("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	eventProducer := event.NewProducer(publisher, logger)

	promos, err := loadPromos(cfg)
	if err != nil {
		a.close()
		return nil, err
	}

	// Order submission through a retrying, circuit-broken client.
	orderHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("order-api"),
		logger,
	)
	orders := checkout.NewOrderClient(orderHTTP, cfg.OrderAPIURL, logger)

	// Build the dependency graph.
	a.sessions = service.NewSessions(repo, eventProducer, logger)
	svc := service.NewStorefrontService(
		a.sessions,
		pricing.NewEngine(ratesFromConfig(cfg)),
		promos,
		orders,
		eventProducer,
		logger,
	)

	// HTTP router.
	router := handler.NewRouter(svc, healthHandler, logger, cfg.CORSAllowedOrigins)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and the idle-session sweeper and blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go a.sessions.RunSweeper(sweepCtx, sweepInterval, a.cfg.SessionIdle())

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.close()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.close()

	a.logger.Info("application shutdown complete")
	return nil
}

// close releases storage, the event producer and the tracer, newest first.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.closer.Close(); err != nil {
			a.logger.Error("close error", slog.String("component", c.name), slog.String("error", err.Error()))
		}
	}
	a.closers = nil

	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
		a.tracerShutdown = nil
	}
}

// openRepository builds the configured state repository. The returned
// closer is nil for drivers that hold no external resources.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.StateRepository, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverRedis:
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return redisrepo.NewStateRepository(rdb, cfg.StorageNamespace, cfg.StateTTL()), rdb, nil

	case config.DriverBolt:
		db, err := database.OpenBolt(database.BoltConfig{Path: cfg.BoltPath})
		if err != nil {
			return nil, nil, err
		}
		repo, err := boltrepo.NewStateRepository(db, cfg.StorageNamespace)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("opened bolt storage", slog.String("path", cfg.BoltPath))
		return repo, db, nil

	default:
		logger.Warn("using in-memory storage; state is lost on restart")
		return memory.NewStateRepository(), nil, nil
	}
}

func loadPromos(cfg *config.Config) (*promo.Catalog, error) {
	if cfg.PromoCatalogPath == "" {
		return promo.Default(), nil
	}
	catalog, err := promo.Load(cfg.PromoCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load promo catalog: %w", err)
	}
	return catalog, nil
}

func ratesFromConfig(cfg *config.Config) pricing.Rates {
	return pricing.Rates{
		TaxRate:               decimal.NewFromFloat(cfg.TaxRate),
		SavingsRate:           decimal.NewFromFloat(cfg.SavingsRate),
		GiftWrapFee:           decimal.NewFromFloat(cfg.GiftWrapFee),
		ExpressShippingFee:    decimal.NewFromFloat(cfg.ExpressShippingFee),
		StandardShippingFee:   decimal.NewFromFloat(cfg.StandardShippingFee),
		FreeShippingThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
	}
}
