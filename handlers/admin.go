// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/cliparse"
	"github.com/DrewRevelate/revelate-website-sub000/identity"
	"github.com/DrewRevelate/revelate-website-sub000/middleware"
	"github.com/DrewRevelate/revelate-website-sub000/models"
	"github.com/DrewRevelate/revelate-website-sub000/polls"
)

type AdminHandler struct {
	db    *sql.DB
	polls *polls.Store
	bus   *broadcast.Bus
	cfg   cliparse.Config
}

func NewAdminHandler(conn *sql.DB, store *polls.Store, bus *broadcast.Bus, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: conn, polls: store, bus: bus, cfg: cfg}
}

// requireAdmin validates the dashboard key header. Writes the 401 itself.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) bool {
	if err := identity.CheckAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// CreatePoll handles POST /admin/polls
// Idempotent: posting an existing poll_id returns 200 and changes nothing,
// including the option set.
func (h *AdminHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll must have at least 2 options")
		return
	}

	def := models.PollDefinition{
		ID:          req.PollID,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	options := make([]models.PollOption, 0, len(req.Options))
	for _, opt := range req.Options {
		if opt.OptionID == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "every option needs an option_id")
			return
		}
		options = append(options, models.PollOption{ID: opt.OptionID, Label: opt.Label})
	}

	created, err := h.polls.EnsureDefinition(r.Context(), def, options)
	if err != nil {
		slog.Error("failed to create poll", "error", err, "poll_id", req.PollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, models.CreatePollResponse{
		PollID:  req.PollID,
		Created: created,
	})
}

// TogglePoll handles POST /admin/polls/:id/status
// The three outcomes stay distinguishable: 404, no-op (changed=false), change.
func (h *AdminHandler) TogglePoll(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.TogglePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	changed, err := h.polls.SetActive(r.Context(), pollID, req.Active)
	if err != nil {
		if errors.Is(err, polls.ErrPollNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to toggle poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if changed {
		h.bus.Publish(broadcast.Event{Kind: models.EventPollStatus, PollID: pollID})
	}

	middleware.JSONResponse(w, http.StatusOK, models.TogglePollResponse{
		PollID:  pollID,
		Active:  req.Active,
		Changed: changed,
	})
}

// ClearPoll handles DELETE /admin/polls/:id/responses
func (h *AdminHandler) ClearPoll(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	deleted, err := h.polls.ClearResponses(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, polls.ErrPollNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to clear poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.bus.Publish(broadcast.Event{Kind: models.EventPollCleared, PollID: pollID})

	// 0 deleted is a valid, reported outcome.
	middleware.JSONResponse(w, http.StatusOK, models.ClearPollResponse{
		PollID:  pollID,
		Deleted: deleted,
	})
}

// Summary handles GET /admin/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var resp models.AdminSummaryResponse

	err := h.db.QueryRowContext(r.Context(), `
		SELECT
			(SELECT COUNT(*) FROM poll_definition),
			(SELECT COUNT(*) FROM poll_response),
			(SELECT COUNT(*) FROM contact)
	`).Scan(&resp.Polls, &resp.Responses, &resp.Contacts)
	if err != nil {
		slog.Error("failed to query summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var lastResponse time.Time
	err = h.db.QueryRowContext(r.Context(), `
		SELECT created_at FROM poll_response ORDER BY created_at DESC LIMIT 1
	`).Scan(&lastResponse)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp.ResponsesText = humanize.Comma(resp.Responses) + " responses"
	resp.ContactsText = humanize.Comma(resp.Contacts) + " contacts"
	if err == nil {
		resp.LastResponse = humanize.Time(lastResponse)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
