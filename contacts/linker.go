// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contacts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/DrewRevelate/revelate-website-sub000/metrics"
	"github.com/DrewRevelate/revelate-website-sub000/models"
)

// Linker retroactively associates anonymous poll activity with a newly
// created contact.
type Linker struct {
	db    *sql.DB
	store *Store
	m     *metrics.Metrics
}

func NewLinker(conn *sql.DB, store *Store, m *metrics.Metrics) *Linker {
	return &Linker{db: conn, store: store, m: m}
}

// Link stamps the contact's uid onto prior unstamped responses that share its
// ip hash, or the client token the contact form carried. When anything
// matched, the contact is tagged as a poll participant and a summary entry is
// appended to its interaction log.
//
// Best-effort by contract: Link runs after the contact is durably created,
// and nothing here may fail that creation. Every error is logged and
// swallowed. Returns the number of responses linked; 0 means no prior
// activity, which is a normal no-op.
func (l *Linker) Link(ctx context.Context, contact *models.Contact, clientToken string) int {
	res, err := l.db.ExecContext(ctx, `
		UPDATE poll_response
		SET contact_uid = $1
		WHERE contact_uid IS NULL AND (ip_hash = $2 OR client_token = $3)
	`, contact.UID, contact.IPHash, clientToken)
	if err != nil {
		slog.Error("contact linking failed", "contact_uid", contact.UID, "error", err)
		return 0
	}

	linked, err := res.RowsAffected()
	if err != nil {
		slog.Error("contact linking failed", "contact_uid", contact.UID, "error", err)
		return 0
	}
	if linked == 0 {
		return 0
	}

	if err := l.store.AddTag(ctx, contact.ID, models.TagPollParticipant); err != nil {
		slog.Warn("failed to tag contact as poll participant", "contact_uid", contact.UID, "error", err)
	}

	note := fmt.Sprintf("Linked %d poll response(s) by shared identity", linked)
	if err := l.store.AddInteraction(ctx, contact.ID, KindPollLink, note); err != nil {
		slog.Warn("failed to record linking interaction", "contact_uid", contact.UID, "error", err)
	}

	l.m.RecordResponsesLinked(int(linked))
	slog.Info("contact linked to poll activity", "contact_uid", contact.UID, "responses", linked)
	return int(linked)
}
