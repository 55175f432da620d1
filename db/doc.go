// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connection opening and database schema creation.

# Opening a Connection

Open picks the driver and verifies connectivity:

	conn, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)

PostgreSQL is the deployment engine. SQLite (modernc.org/sqlite, no cgo) is
accepted for local development and is what the test suite runs on. One schema
text and one query dialect serve both.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll_definition: Static poll metadata + active flag
  - poll_option: Ordered answer choices per poll
  - poll_response: One accepted vote per voter per poll
  - poll_response_option: Response -> option fan-out
  - contact: Captured leads
  - tag / contact_tag: Contact labels, deduplicated by name
  - contact_interaction: Append-only contact activity log

# Relationships

	poll_definition 1──* poll_option
	poll_definition 1──* poll_response
	poll_response 1──* poll_response_option
	contact *──* tag (via contact_tag)
	contact 1──* contact_interaction
	contact 1──* poll_response (late-bound, via poll_response.contact_uid)

# Uniqueness

poll_response carries UNIQUE (poll_id, client_token) and
UNIQUE (poll_id, ip_hash). Under concurrent submission these constraints are
the actual dedup source of truth; the recorder's in-transaction check is a
fast path that keeps constraint violations out of the common case.
*/
package db
