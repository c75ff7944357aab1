package main

import (
	"Quill/internal/api/config"
	"Quill/internal/pkg/cron"
	"Quill/internal/pkg/database"
	"Quill/internal/pkg/es"
	"Quill/internal/pkg/logger"
	"Quill/internal/pkg/minio"
	"Quill/internal/pkg/mongo"
	"Quill/internal/pkg/redis"
	"Quill/internal/wire"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const readHeaderTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Error("App exited with error", "err", err)
		os.Exit(1)
	}
	log.Info("App exited successfully.")
}

func run() error {
	if err := config.LoadConfig(); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := config.Cfg

	if closer := logger.InitLogger(cfg.Log); closer != nil {
		defer closeQuietly("logstash", closer)
	}

	// 存储与中间件连接，可选组件未配置时跳过
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer closeQuietly("database", sqlDB)
	}

	if err = redis.InitRedis(cfg.Redis, cfg.Log.Slow()); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			log.Error("Redis close failed", "err", err)
		}
	}()

	mongoDB, err := mongo.InitMongo(cfg.Mongo, cfg.Log.Slow())
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(ctx, mongoDB); err != nil {
			log.Error("MongoDB disconnect failed", "err", err)
		}
	}()

	if err = minio.Init(cfg.MinIO); err != nil {
		return fmt.Errorf("initialize minio: %w", err)
	}
	if err = es.InitClient(cfg.Elastic, cfg.Log.Slow()); err != nil {
		return fmt.Errorf("initialize elasticsearch: %w", err)
	}

	app, err := wire.BuildApplication(db, mongoDB, cfg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if err = cron.InitCron(app.CronMgr); err != nil {
		return fmt.Errorf("start cron jobs: %w", err)
	}

	if app.KafkaManager != nil {
		g.Go(func() error {
			log.Info("Kafka consumers starting...")
			return app.KafkaManager.Start(ctx)
		})
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	g.Go(func() error {
		log.Info("HTTP server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 收到信号或任一组件失败后依次停止：HTTP -> 定时任务 -> 事件发布
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown failed", "err", err)
		}
		app.CronMgr.Stop()
		if app.Publisher != nil {
			closeQuietly("post event publisher", app.Publisher)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func closeQuietly(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Error("Close failed", "component", name, "err", err)
	}
}
