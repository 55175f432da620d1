// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Revelate live polling and
lead-capture API server.

The service backs interactive slides: the audience votes on polls embedded
in a presentation, each poll takes at most one response per voter identity,
and visitors who later submit the contact form get linked back to their
anonymous poll activity.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... IP_HASH_SALT=... ADMIN_KEY=... go run main.go

Or with flags:

	go run main.go -p 3000 -d "postgres://..." -ip-salt ... -admin-key ...

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - IP_HASH_SALT (-ip-salt): secret for hashing voter IPs
  - ADMIN_KEY (-admin-key): shared key for the /admin dashboard routes

Optional settings:

  - PORT (-p): server port (default: 3000)
  - DATABASE_DRIVER (-t): postgres (default) or sqlite
  - SEED_FILE (-seed): JSON file of polls to create at startup

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (votes, contacts, admin, events)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, JSON helpers
  - models: Request/response and domain types
  - identity: Voter identity resolution (client token + hashed IP)
  - polls: Poll store, vote recording, tallies, seeding
  - contacts: Lead store and poll-activity linker
  - broadcast: In-process event bus behind the SSE stream
  - metrics: Prometheus counters
  - db: Connection handling and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
