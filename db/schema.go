// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema text is written once and runs unchanged on both supported
// engines: $n placeholders, TEXT/INTEGER/TIMESTAMP/BOOLEAN types, explicit
// timestamps bound by the application.
const schema = `
-- Poll definitions
CREATE TABLE IF NOT EXISTS poll_definition (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Poll options (option ids are stable per-poll codes, e.g. "pizza")
CREATE TABLE IF NOT EXISTS poll_option (
    id TEXT NOT NULL,
    poll_id TEXT NOT NULL REFERENCES poll_definition(id) ON DELETE CASCADE,
    label TEXT NOT NULL,
    display_order INTEGER NOT NULL,
    PRIMARY KEY (poll_id, id)
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id);

-- Poll responses: at most one per (poll, client_token) and per (poll, ip_hash).
-- These constraints are the race-safety source of truth; the application-level
-- duplicate check is a fast path only.
CREATE TABLE IF NOT EXISTS poll_response (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll_definition(id) ON DELETE CASCADE,
    uid TEXT NOT NULL,
    client_token TEXT NOT NULL,
    ip_hash TEXT NOT NULL,
    contact_uid TEXT,
    metadata TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (poll_id, client_token),
    UNIQUE (poll_id, ip_hash)
);

CREATE INDEX IF NOT EXISTS idx_poll_response_poll_id ON poll_response(poll_id);
CREATE INDEX IF NOT EXISTS idx_poll_response_ip_hash ON poll_response(ip_hash);
CREATE INDEX IF NOT EXISTS idx_poll_response_contact_uid ON poll_response(contact_uid);

-- Response -> option fan-out
CREATE TABLE IF NOT EXISTS poll_response_option (
    response_id TEXT NOT NULL REFERENCES poll_response(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL,
    PRIMARY KEY (response_id, option_id)
);

CREATE INDEX IF NOT EXISTS idx_poll_response_option_option ON poll_response_option(option_id);

-- Contacts (leads from the contact form)
CREATE TABLE IF NOT EXISTS contact (
    id TEXT PRIMARY KEY,
    uid TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    company TEXT,
    phone TEXT,
    message TEXT,
    ip_hash TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'new',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_contact_ip_hash ON contact(ip_hash);

-- Tags, deduplicated by name
CREATE TABLE IF NOT EXISTS tag (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS contact_tag (
    contact_id TEXT NOT NULL REFERENCES contact(id) ON DELETE CASCADE,
    tag_id TEXT NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
    PRIMARY KEY (contact_id, tag_id)
);

-- Append-only interaction log per contact
CREATE TABLE IF NOT EXISTS contact_interaction (
    id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL REFERENCES contact(id) ON DELETE CASCADE,
    kind TEXT NOT NULL,
    note TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_contact_interaction_contact ON contact_interaction(contact_id);
`
