// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/cliparse"
	"github.com/DrewRevelate/revelate-website-sub000/db"
	"github.com/DrewRevelate/revelate-website-sub000/metrics"
	"github.com/DrewRevelate/revelate-website-sub000/middleware"
	"github.com/DrewRevelate/revelate-website-sub000/polls"
	"github.com/DrewRevelate/revelate-website-sub000/router"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	conn, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	m := metrics.New(prometheus.DefaultRegisterer)
	bus := broadcast.NewBus()

	// Seed polls if a seed file was configured
	if cfg.SeedFile != "" {
		seeds, err := polls.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			slog.Error("seed file load failed", "error", err, "path", cfg.SeedFile)
			os.Exit(1)
		}
		if err := polls.NewStore(conn, m).Seed(context.Background(), seeds); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Polls seeded", "count", len(seeds))
	}

	// Create router
	mux := router.NewRouter(conn, cfg, m, bus)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(middleware.Recover(mux)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
