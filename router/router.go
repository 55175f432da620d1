// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/cliparse"
	"github.com/DrewRevelate/revelate-website-sub000/contacts"
	"github.com/DrewRevelate/revelate-website-sub000/handlers"
	"github.com/DrewRevelate/revelate-website-sub000/metrics"
	"github.com/DrewRevelate/revelate-website-sub000/middleware"
	"github.com/DrewRevelate/revelate-website-sub000/polls"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config, m *metrics.Metrics, bus *broadcast.Bus) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize stores and handlers
	pollStore := polls.NewStore(conn, m)
	contactStore := contacts.NewStore(conn, m)
	linker := contacts.NewLinker(conn, contactStore, m)

	voteHandler := handlers.NewVoteHandler(pollStore, bus, cfg)
	adminHandler := handlers.NewAdminHandler(conn, pollStore, bus, cfg)
	contactHandler := handlers.NewContactHandler(contactStore, linker, bus, cfg)
	eventHandler := handlers.NewEventHandler(bus)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics scrape endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	// Voting (public)
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(voteHandler.SubmitVote))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(voteHandler.GetPollState))

	// Lead capture (public)
	mux.HandleFunc("POST /contacts", middleware.WithLogging(contactHandler.CreateContact))

	// Live updates (public); logging would hold the line open for the
	// stream's whole lifetime, so the stream handler logs itself.
	mux.HandleFunc("GET /events", eventHandler.Stream)

	// Poll administration (X-Admin-Key)
	mux.HandleFunc("POST /admin/polls", middleware.WithLogging(adminHandler.CreatePoll))
	mux.HandleFunc("POST /admin/polls/{id}/status", middleware.WithLogging(adminHandler.TogglePoll))
	mux.HandleFunc("DELETE /admin/polls/{id}/responses", middleware.WithLogging(adminHandler.ClearPoll))
	mux.HandleFunc("GET /admin/summary", middleware.WithLogging(adminHandler.Summary))

	// Contact administration (X-Admin-Key)
	mux.HandleFunc("GET /admin/contacts", middleware.WithLogging(contactHandler.ListContacts))
	mux.HandleFunc("GET /admin/contacts/{uid}", middleware.WithLogging(contactHandler.GetContact))
	mux.HandleFunc("POST /admin/contacts/{uid}/status", middleware.WithLogging(contactHandler.UpdateContactStatus))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("revelate polls API v1"))
	})

	return mux
}
