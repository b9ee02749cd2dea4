package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobposter-backend/internal/config"
	"jobposter-backend/internal/database"
	"jobposter-backend/internal/logging"
	"jobposter-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").WithError(err).Fatal("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel)

	db, err := database.NewDBInstance(&cfg.DB)
	if err != nil {
		logger.WithError(err).Fatal("database failed to initialize")
	}
	defer func() { _ = db.Close() }()

	if err := db.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.WithError(err).Fatal("failed to bootstrap admin account")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg, db, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create server")
	}
	defer func() { _ = srv.Close() }()

	httpServer := srv.HTTPServer()
	go func() {
		logger.WithFields(logrus.Fields{
			"addr": httpServer.Addr,
			"mode": gin.Mode(),
		}).Info("api started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
