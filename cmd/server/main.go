package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/revanew/site/internal/config"
	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/logger"
	"github.com/revanew/site/internal/router"
	"github.com/revanew/site/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logr.Sync()

	gin.SetMode(cfg.HTTP.GinMode)

	// 初始化内容存储；未配置时以占位客户端运行
	client, err := store.Open(cfg.Store, logr)
	if err != nil {
		logr.Fatalw("failed to open content store", "err", err)
	}
	defer client.Close()

	if err := bootstrapAdmin(client, cfg.Admin, logr); err != nil {
		logr.Errorw("failed to ensure admin account", "err", err)
	}

	r, err := router.SetupRouter(cfg, client, logr)
	if err != nil {
		logr.Fatalw("failed to set up router", "err", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Infow("server listening", "addr", cfg.HTTP.ListenAddr, "store", client.Ready())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatalw("failed to run server", "err", err)
		}
	}()

	// 指标单独监听，避免与站点共用入口
	var metricsSrv *http.Server
	if cfg.HTTP.MetricsAddr != "" {
		metricsSrv = &http.Server{
			Addr:              cfg.HTTP.MetricsAddr,
			Handler:           router.MetricsHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logr.Infow("metrics listening", "addr", cfg.HTTP.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logr.Errorw("metrics server stopped", "err", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Errorw("server shutdown", "err", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logr.Errorw("metrics server shutdown", "err", err)
		}
	}
	logr.Info("server stopped")
}

// bootstrapAdmin creates the configured admin account through the privileged client.
func bootstrapAdmin(client *store.Client, admin config.Admin, log *zap.SugaredLogger) error {
	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	gdb, err := client.Privileged().Write(context.Background())
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) || errors.Is(err, store.ErrReadOnly) {
			log.Warnw("admin bootstrap skipped", "reason", err)
			return nil
		}
		return err
	}
	return db.EnsureAdmin(gdb, admin.Username, admin.Password)
}
