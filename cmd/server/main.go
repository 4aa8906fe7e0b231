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
	flag "github.com/spf13/pflag"

	"mechanic_shop/internal/config"
	"mechanic_shop/internal/controllers"
	"mechanic_shop/internal/events"
	"mechanic_shop/internal/logger"
	"mechanic_shop/internal/middleware"
	"mechanic_shop/internal/routes"
	"mechanic_shop/internal/services"
	"mechanic_shop/internal/store"
	"mechanic_shop/internal/validation"
)

func main() {
	var (
		envFile     = flag.String("env-file", ".env", "dotenv file to load before reading the environment")
		addr        = flag.String("addr", "", "listen address, overrides SERVER_ADDR")
		migrateOnly = flag.Bool("migrate-only", false, "apply database migrations and exit")
	)
	flag.Parse()

	cfg := config.Load(*envFile)
	if *addr != "" {
		cfg.ServerAddr = *addr
	}

	// Initialize structured logging to file
	logger.Setup(logger.Options{
		File:       cfg.LogFile,
		Level:      cfg.LogLevel,
		Stdout:     cfg.LogStdout,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	// Connect to the database
	db, err := config.OpenDB(cfg, logger.GormLogger())
	if err != nil {
		logrus.WithError(err).Fatal("Database setup failed")
	}
	logrus.WithField("driver", cfg.DBDriver).Info("Database connected and migrated")
	if *migrateOnly {
		return
	}

	gin.SetMode(cfg.GinMode)
	validation.Setup()

	st := store.New(db)
	auth := middleware.NewJWTAuth(cfg.JWTSecret, cfg.JWTTTL)
	hub := events.NewHub(100)
	defer hub.Close()

	h := controllers.NewHandler(services.NewShop(st, auth), auth, hub, st)
	r := routes.SetupRouter(h, auth,
		middleware.RequestID(),
		middleware.RequestLogger(logger.Output()),
		middleware.EnableCORS(cfg.CORSOrigins),
	)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server running at %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}
