package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-tracking/internal/broadcast"
	"courier-tracking/internal/config"
	"courier-tracking/internal/http/handlers"
	"courier-tracking/internal/http/router"
	"courier-tracking/internal/jobs"
	"courier-tracking/internal/logx"
	"courier-tracking/internal/metrics"
	"courier-tracking/internal/repository"
	"courier-tracking/internal/service/auth"
	"courier-tracking/internal/service/location"
	"courier-tracking/internal/service/pkgreg"
	"courier-tracking/internal/service/users"
	"courier-tracking/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerBroadcast(container); err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registered(c prometheus.Counter) prometheus.Counter {
	prometheus.MustRegister(c)
	return c
}

type hubIn struct {
	dig.In
	Logger  logx.Logger
	Cfg     *config.Config
	Dropped prometheus.Counter `name:"broadcast_dropped_total"`
}

type snapshotIn struct {
	dig.In
	Repo     *repository.LocationRepo
	Hub      *broadcast.Hub
	Cfg      *config.Config
	Logger   logx.Logger
	Ticks    prometheus.Counter `name:"snapshot_ticks_total"`
	Failures prometheus.Counter `name:"snapshot_failures_total"`
}

func registerBroadcast(container *dig.Container) error {
	if err := container.Provide(
		func() prometheus.Counter { return registered(metrics.NewBroadcastDroppedTotal()) },
		dig.Name("broadcast_dropped_total"),
	); err != nil {
		return err
	}
	if err := container.Provide(
		func() prometheus.Counter { return registered(metrics.NewSnapshotTicksTotal()) },
		dig.Name("snapshot_ticks_total"),
	); err != nil {
		return err
	}
	if err := container.Provide(
		func() prometheus.Counter { return registered(metrics.NewSnapshotFailuresTotal()) },
		dig.Name("snapshot_failures_total"),
	); err != nil {
		return err
	}
	return provideAll(container,
		func(in hubIn) *broadcast.Hub {
			return broadcast.NewHub(in.Logger, in.Cfg.Broadcast.Buffer, in.Dropped)
		},
		func(in snapshotIn) *jobs.SnapshotJob {
			return jobs.NewSnapshotJob(in.Repo, in.Hub,
				in.Cfg.Broadcast.SnapshotInterval, in.Logger, in.Ticks, in.Failures)
		},
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewLocationRepo,
		repository.NewPackageRepo,
		repository.NewUserRepo,
		func() time.Duration { return 3 * time.Second },
		func(cfg *config.Config) (*kafka.Publisher, error) {
			return kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		},
		func(p *kafka.Publisher) location.EventPublisher {
			if p == nil {
				return nil
			}
			return p
		},
		func(repo *repository.LocationRepo, hub *broadcast.Hub, events location.EventPublisher,
			timeout time.Duration, logger logx.Logger) *location.Service {
			return location.NewService(repo, hub, events, timeout, logger)
		},
		func(repo *repository.PackageRepo, hub *broadcast.Hub, timeout time.Duration) *pkgreg.Service {
			return pkgreg.NewService(repo, hub, timeout)
		},
		func(repo *repository.UserRepo, timeout time.Duration) *auth.Service {
			return auth.NewService(repo, timeout)
		},
		func(repo *repository.UserRepo, timeout time.Duration) *users.Service {
			return users.NewService(repo, timeout)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewLocationUsecase,
		handlers.NewLocationHandler,
		handlers.NewPackageUsecase,
		handlers.NewPackageHandler,
		handlers.NewAuthUsecase,
		handlers.NewUserLister,
		handlers.NewUserHandler,
		handlers.NewObserverHub,
		handlers.NewStreamHandler,
		router.New,
		serverProvider,
	)
}
