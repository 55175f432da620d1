// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/cliparse"
	"github.com/DrewRevelate/revelate-website-sub000/identity"
	"github.com/DrewRevelate/revelate-website-sub000/middleware"
	"github.com/DrewRevelate/revelate-website-sub000/models"
	"github.com/DrewRevelate/revelate-website-sub000/polls"
)

type VoteHandler struct {
	polls *polls.Store
	bus   *broadcast.Bus
	cfg   cliparse.Config
}

func NewVoteHandler(store *polls.Store, bus *broadcast.Bus, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{polls: store, bus: bus, cfg: cfg}
}

// SubmitVote handles POST /polls/:id/votes
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Options) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "options cannot be empty")
		return
	}

	// The token comes from the body, the header, or — for first-time voters
	// with storage disabled — is minted here and echoed back for persisting.
	clientToken := req.ClientToken
	if clientToken == "" {
		clientToken = r.Header.Get("X-Client-Token")
	}
	if clientToken == "" {
		minted, err := identity.NewClientToken()
		if err != nil {
			slog.Error("failed to mint client token", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
			return
		}
		clientToken = minted
	}

	meta := req.Metadata
	if meta.UserAgent == "" {
		meta.UserAgent = r.UserAgent()
	}

	voter := identity.Resolve(middleware.GetClientIP(r), clientToken, h.cfg.IPHashSalt)

	result, err := h.polls.SubmitVote(r.Context(), pollID, voter, req.Options, meta)
	if err != nil {
		switch {
		case errors.Is(err, polls.ErrPollNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, polls.ErrPollInactive):
			middleware.ErrorResponse(w, http.StatusConflict, "Poll is not active")
		default:
			slog.Error("failed to submit vote", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyVoted {
		// Not an error: the voter sees "thanks, here are the results".
		status = http.StatusOK
	} else {
		h.bus.Publish(broadcast.Event{Kind: models.EventVote, PollID: pollID})
	}

	middleware.JSONResponse(w, status, models.SubmitVoteResponse{
		AlreadyVoted: result.AlreadyVoted,
		ResponseUID:  result.ResponseUID,
		ClientToken:  clientToken,
		Tally:        result.Tally,
	})
}

// GetPollState handles GET /polls/:id
// Returns the definition, the live tally, and whether this caller has voted.
func (h *VoteHandler) GetPollState(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	pw, err := h.polls.GetDefinition(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, polls.ErrPollNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		slog.Error("failed to query poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tally, err := h.polls.GetTally(r.Context(), pollID)
	if err != nil {
		slog.Error("failed to query tally", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Same duplicate query the recorder uses, so the "has voted" banner and
	// the dedup decision can never disagree.
	voter := identity.Resolve(middleware.GetClientIP(r), r.Header.Get("X-Client-Token"), h.cfg.IPHashSalt)
	hasVoted, err := h.polls.HasVoted(r.Context(), pollID, voter)
	if err != nil {
		slog.Error("failed to check voter", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollStateResponse{
		Poll:     pw.Poll,
		Options:  pw.Options,
		Tally:    tally,
		HasVoted: hasVoted,
	})
}
