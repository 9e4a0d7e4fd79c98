package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/liondadev/quick-media-host/config"
	"github.com/liondadev/quick-media-host/logging"
	"github.com/liondadev/quick-media-host/server"
	"github.com/liondadev/quick-media-host/store"

	_ "github.com/glebarez/go-sqlite"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Panicf("load config: %s", err.Error())
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		log.Panicf("build logger: %s", err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// Sqlite connection pool
	db, err := sqlx.Open("sqlite", cfg.Sqlite.Path)
	if err != nil {
		logger.Fatalf("open sqlite driver: %s", err.Error())
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Sqlite.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Sqlite.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	st := store.New(db)
	if err := st.ApplyMigrations(); err != nil {
		logger.Fatalf("apply database migrations: %s", err.Error())
	}

	svr := server.New(cfg, st, logger)
	if err := svr.SetupHTTP(); err != nil {
		logger.Fatalf("setup http: %s", err.Error())
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: svr.Handler(),
	}

	go func() {
		logger.Infof("listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %s", err.Error())
	}

	logger.Info("shutdown completed")
}
