// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tmarkell/consensio/cliparse"
	"github.com/tmarkell/consensio/db"
	"github.com/tmarkell/consensio/events"
	"github.com/tmarkell/consensio/memstore"
	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/router"
	"github.com/tmarkell/consensio/sqlstore"
	"github.com/tmarkell/consensio/store"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Select the store backend
	var st store.Store
	switch cfg.DatabaseType {
	case "memory":
		st = memstore.New()
		slog.Info("Using in-memory store")
	default:
		conn, err := db.Open(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		if err := db.CreateSchema(conn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "backend", cfg.DatabaseType)

		st = sqlstore.New(conn)
	}

	// Create router and realtime hub
	hub := events.NewHub()
	mux := router.NewRouter(st, hub)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
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
