// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DrewRevelate/revelate-website-sub000/identity"
	"github.com/DrewRevelate/revelate-website-sub000/models"
)

// VoteResult is the outcome of a submission. A duplicate is a normal result,
// not an error: AlreadyVoted is set and the tally reflects the state the
// earlier vote left behind.
type VoteResult struct {
	AlreadyVoted bool
	ResponseUID  string
	Tally        []models.OptionCount
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// The shared duplicate query: a match on EITHER identity signal counts.
func voterHasResponse(ctx context.Context, q querier, pollID string, voter identity.VoterIdentity) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM poll_response
			WHERE poll_id = $1 AND (client_token = $2 OR ip_hash = $3)
		)
	`, pollID, voter.ClientToken, voter.IPHash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("duplicate check: %w", err)
	}
	return exists, nil
}

// HasVoted reports whether this voter already has a stored response for the
// poll. Same query the recorder uses, exposed for the poll-state endpoint.
func (s *Store) HasVoted(ctx context.Context, pollID string, voter identity.VoterIdentity) (bool, error) {
	return voterHasResponse(ctx, s.db, pollID, voter)
}

// SubmitVote records one vote, or reports a duplicate.
//
// The fast-path duplicate check runs outside the transaction; the check is
// repeated inside it because two in-flight submissions for the same voter can
// both pass the first one. The unique constraints on poll_response are the
// final arbiter: if the insert still loses the race, the violation is
// swallowed and reported as a duplicate, never surfaced to the caller.
func (s *Store) SubmitVote(ctx context.Context, pollID string, voter identity.VoterIdentity, optionIDs []string, meta models.VoteMetadata) (*VoteResult, error) {
	if voter.ClientToken == "" {
		return nil, ErrMissingClientToken
	}

	pw, err := s.GetDefinition(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if !pw.Poll.IsActive {
		return nil, ErrPollInactive
	}

	voted, err := voterHasResponse(ctx, s.db, pollID, voter)
	if err != nil {
		return nil, err
	}
	if voted {
		return s.duplicateResult(ctx, pollID)
	}

	// If a contact already exists for this voter's ip hash, stamp its uid on
	// the response now so the linker has nothing left to do later.
	var contactUID sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT uid FROM contact WHERE ip_hash = $1 ORDER BY created_at DESC LIMIT 1
	`, voter.IPHash).Scan(&contactUID.String)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("contact pre-link lookup: %w", err)
	}
	contactUID.Valid = err == nil

	known := make(map[string]bool, len(pw.Options))
	for _, opt := range pw.Options {
		known[opt.ID] = true
	}

	responseID, err := identity.GenerateID(16)
	if err != nil {
		return nil, fmt.Errorf("generate response id: %w", err)
	}
	responseUID := identity.NewUID("PR")

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin submit vote: %w", err)
	}
	defer tx.Rollback()

	// Re-check inside the transaction: a concurrent submission may have
	// committed since the fast-path check.
	voted, err = voterHasResponse(ctx, tx, pollID, voter)
	if err != nil {
		return nil, err
	}
	if voted {
		tx.Rollback()
		return s.duplicateResult(ctx, pollID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll_response (id, poll_id, uid, client_token, ip_hash, contact_uid, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, responseID, pollID, responseUID, voter.ClientToken, voter.IPHash, contactUID, string(metaJSON), time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			tx.Rollback()
			slog.Info("lost submission race, reporting duplicate", "poll_id", pollID)
			return s.duplicateResult(ctx, pollID)
		}
		return nil, fmt.Errorf("insert response: %w", err)
	}

	recorded := 0
	seen := make(map[string]bool, len(optionIDs))
	for _, optionID := range optionIDs {
		if seen[optionID] {
			continue
		}
		seen[optionID] = true
		if !known[optionID] {
			// Recoverable: skip the code, keep the submission.
			s.m.RecordUnknownOption()
			slog.Warn("skipping unrecognized option code", "poll_id", pollID, "option_id", optionID)
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_response_option (response_id, option_id)
			VALUES ($1, $2)
		`, responseID, optionID)
		if err != nil {
			return nil, fmt.Errorf("insert response option %q: %w", optionID, err)
		}
		recorded++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submit vote: %w", err)
	}

	s.m.RecordVoteAccepted()
	slog.Info("vote recorded", "poll_id", pollID, "response_uid", responseUID, "options", recorded)

	tally, err := s.GetTally(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{ResponseUID: responseUID, Tally: tally}, nil
}

func (s *Store) duplicateResult(ctx context.Context, pollID string) (*VoteResult, error) {
	tally, err := s.GetTally(ctx, pollID)
	if err != nil {
		return nil, err
	}
	s.m.RecordVoteDuplicate()
	slog.Info("duplicate vote", "poll_id", pollID)
	return &VoteResult{AlreadyVoted: true, Tally: tally}, nil
}
