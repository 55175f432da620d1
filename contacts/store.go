// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contacts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DrewRevelate/revelate-website-sub000/db"
	"github.com/DrewRevelate/revelate-website-sub000/identity"
	"github.com/DrewRevelate/revelate-website-sub000/metrics"
	"github.com/DrewRevelate/revelate-website-sub000/models"
)

// Interaction kinds written by this package.
const (
	KindPollLink     = "poll-link"
	KindStatusChange = "status-change"
)

// Store owns the contact, tag, and interaction tables.
type Store struct {
	db *sql.DB
	m  *metrics.Metrics
}

func NewStore(conn *sql.DB, m *metrics.Metrics) *Store {
	return &Store{db: conn, m: m}
}

// Create persists a new lead. Surrogate id, uid, default status, and
// timestamps are filled in on the passed contact.
func (s *Store) Create(ctx context.Context, contact *models.Contact) error {
	contact.ID = uuid.NewString()
	contact.UID = identity.NewUID("CT")
	if contact.Status == "" {
		contact.Status = models.StatusNew
	}
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact (id, uid, name, email, company, phone, message, ip_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, contact.ID, contact.UID, contact.Name, contact.Email, contact.Company,
		contact.Phone, contact.Message, contact.IPHash, contact.Status,
		contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}

	s.m.RecordContactCreated()
	slog.Info("contact created", "contact_uid", contact.UID)
	return nil
}

func (s *Store) GetByUID(ctx context.Context, uid string) (*models.Contact, error) {
	var c models.Contact
	var company, phone, message sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, uid, name, email, company, phone, message, ip_hash, status, created_at, updated_at
		FROM contact
		WHERE uid = $1
	`, uid).Scan(&c.ID, &c.UID, &c.Name, &c.Email, &company, &phone, &message,
		&c.IPHash, &c.Status, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query contact: %w", err)
	}
	c.Company = company.String
	c.Phone = phone.String
	c.Message = message.String
	return &c, nil
}

// List returns all contacts, newest first.
func (s *Store) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, uid, name, email, company, phone, message, ip_hash, status, created_at, updated_at
		FROM contact
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		var company, phone, message sql.NullString
		if err := rows.Scan(&c.ID, &c.UID, &c.Name, &c.Email, &company, &phone,
			&message, &c.IPHash, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.Company = company.String
		c.Phone = phone.String
		c.Message = message.String
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

// UpdateStatus moves a contact along the lifecycle and logs the change as an
// interaction. The lifecycle is free-form by design; no transition check.
func (s *Store) UpdateStatus(ctx context.Context, uid, status, note string) error {
	contact, err := s.GetByUID(ctx, uid)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE contact SET status = $1, updated_at = $2 WHERE uid = $3
	`, status, time.Now(), uid)
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}

	entry := fmt.Sprintf("Status changed from %s to %s", contact.Status, status)
	if note != "" {
		entry += ": " + note
	}
	if err := s.AddInteraction(ctx, contact.ID, KindStatusChange, entry); err != nil {
		return err
	}

	slog.Info("contact status updated", "contact_uid", uid, "status", status)
	return nil
}

// AddTag applies a tag by name, creating the tag row if needed. Tags are
// deduplicated by name; re-applying an existing tag is a no-op.
func (s *Store) AddTag(ctx context.Context, contactID, name string) error {
	tagID, err := s.ensureTag(ctx, name)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contact_tag (contact_id, tag_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, contactID, tagID)
	if err != nil {
		return fmt.Errorf("insert contact tag: %w", err)
	}
	return nil
}

func (s *Store) ensureTag(ctx context.Context, name string) (string, error) {
	var tagID string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM tag WHERE name = $1`, name).Scan(&tagID)
	if err == nil {
		return tagID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("query tag: %w", err)
	}

	tagID = uuid.NewString()
	_, err = s.db.ExecContext(ctx, `INSERT INTO tag (id, name) VALUES ($1, $2)`, tagID, name)
	if err != nil {
		// Concurrent create of the same tag name: re-read the winner.
		if db.IsUniqueViolation(err) {
			if err := s.db.QueryRowContext(ctx, `SELECT id FROM tag WHERE name = $1`, name).Scan(&tagID); err != nil {
				return "", fmt.Errorf("re-query tag: %w", err)
			}
			return tagID, nil
		}
		return "", fmt.Errorf("insert tag: %w", err)
	}
	return tagID, nil
}

// ListTags returns the tag names applied to a contact.
func (s *Store) ListTags(ctx context.Context, contactID string) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name
		FROM tag t
		JOIN contact_tag ct ON ct.tag_id = t.id
		WHERE ct.contact_id = $1
		ORDER BY t.name
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("query contact tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// AddInteraction appends to the contact's activity log. Interactions are
// never updated or deleted.
func (s *Store) AddInteraction(ctx context.Context, contactID, kind, note string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_interaction (id, contact_id, kind, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), contactID, kind, note, time.Now())
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// ListInteractions returns a contact's activity log, oldest first.
func (s *Store) ListInteractions(ctx context.Context, contactID string) ([]models.Interaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contact_id, kind, note, created_at
		FROM contact_interaction
		WHERE contact_id = $1
		ORDER BY created_at
	`, contactID)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	interactions := []models.Interaction{}
	for rows.Next() {
		var entry models.Interaction
		var note sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ContactID, &entry.Kind, &note, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		entry.Note = note.String
		interactions = append(interactions, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return interactions, nil
}
