package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"courier-tracking/internal/broadcast"
	"courier-tracking/internal/config"
	"courier-tracking/internal/http/pprofserver"
	"courier-tracking/internal/jobs"
	"courier-tracking/internal/logx"
	"courier-tracking/internal/repository"
	"courier-tracking/internal/transport/kafka"
)

// MustRun starts the tracking service using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In
	Ctx       context.Context
	Cfg       *config.Config
	Server    *http.Server
	Pool      *pgxpool.Pool
	Hub       *broadcast.Hub
	Snapshot  *jobs.SnapshotJob
	Publisher *kafka.Publisher
	Logger    logx.Logger
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		if err := repository.ApplySchema(in.Ctx, in.Pool); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		if err := in.Snapshot.Start(); err != nil {
			return err
		}
		debug := startPprof(in.Cfg, in.Logger)
		startServer(in.Server, in.Logger)

		waitForShutdown(in.Ctx, in.Logger)

		in.Snapshot.Stop()
		in.Hub.Close()
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		closeResources(in, debug)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("service-tracking listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprof(cfg *config.Config, logger logx.Logger) *http.Server {
	if cfg.Pprof.Port <= 0 {
		return nil
	}
	debug := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Pprof.Port),
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", debug.Addr))
		if err := debug.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Any("err", err))
		}
	}()
	return debug
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-tracking")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(in runIn, debug *http.Server) {
	if err := in.Server.Close(); err != nil {
		in.Logger.Error("server close error", logx.Any("err", err))
	}
	if debug != nil {
		if err := debug.Close(); err != nil {
			in.Logger.Error("pprof close error", logx.Any("err", err))
		}
	}
	if err := in.Publisher.Close(); err != nil {
		in.Logger.Error("kafka close error", logx.Any("err", err))
	}
	in.Pool.Close()
}
