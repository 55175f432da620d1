// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP layer.

Handlers translate between HTTP and the stores: they parse bodies, resolve
the caller's voter identity from the request, call into polls/contacts, map
sentinel errors to status codes, and publish broadcast events for anything
that changed state.

# Status Conventions

  - 201: a vote or contact was recorded
  - 200: duplicate vote (the tally is still returned), or an admin
    operation that completed without creating anything
  - 409: vote against an inactive poll
  - 401: missing or wrong X-Admin-Key on /admin routes
  - 404: unknown poll or contact

Admin routes authenticate per-request via requireAdmin; there is no session
state.
*/
package handlers
