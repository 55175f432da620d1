// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers.

# Request Wrapping

  - WithLogging: per-request slog line with method, path, and duration
  - Recover: panic → 500 with a logged stack
  - CORS: cross-origin headers for the slide frontend, including the
    X-Admin-Key and X-Client-Token request headers; answers preflights

# JSON Helpers

  - JSONResponse / ErrorResponse: encode responses with the shared
    models.ErrorResponse shape
  - ParseJSONBody: decode and close the request body

# Client IP

GetClientIP resolves the submitting IP behind proxies: X-Forwarded-For
(first hop), then X-Real-IP, then RemoteAddr with the port stripped. The
result feeds identity.HashIP; an empty result is acceptable there.
*/
package middleware
