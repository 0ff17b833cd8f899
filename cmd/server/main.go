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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"erp-console/internal/apiclient"
	"erp-console/internal/config"
	"erp-console/internal/database"
	"erp-console/internal/logger"
	"erp-console/internal/metrics"
	"erp-console/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Name:  cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Msg("starting console")
	if cfg.Session.Generated {
		log.Warn().Msg("SESSION_SECRET not set, using a random key; sessions end on restart")
	}
	if !cfg.App.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	api := apiclient.New(cfg.API.BaseURL,
		apiclient.WithHTTPClient(&http.Client{
			Timeout:   cfg.API.Timeout,
			Transport: m.Transport(http.DefaultTransport),
		}),
		apiclient.WithLogger(log),
	)

	var db *gorm.DB
	if cfg.DBDSN != "" {
		db, err = database.Open(cfg.DBDSN, log)
		if err != nil {
			log.Fatal().Err(err).Msg("console database")
		}
	} else {
		log.Info().Msg("DB_DSN not set, audit trail disabled")
	}

	r, err := server.NewRouter(server.Deps{
		Config:  cfg,
		Log:     log,
		API:     api,
		DB:      db,
		Metrics: m,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}

	log.Info().Msg("console stopped")
}
