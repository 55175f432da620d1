// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity derives voter identities and mints ids.

# Voter Identity

A voter is identified by two concurrently valid signals: an opaque token the
client generates and persists locally, and a salted one-way hash of the
submission IP. Resolve combines them:

	voter := identity.Resolve(middleware.GetClientIP(r), req.ClientToken, cfg.IPHashSalt)

Either signal matching an existing response counts as a duplicate vote. Two
households behind the same NAT therefore look like one voter — a deliberate
simplicity-over-precision tradeoff.

# Unique IDs

NewUID produces shareable correlation ids ("PR-1724609341123042") stamped on
responses and contacts. They are timestamp+random, human-scannable, and NOT
cryptographically unique. GenerateID and NewClientToken use crypto/rand and
are used for surrogate keys and client tokens respectively.

# Admin Key

CheckAdminKey is a constant-time comparison of the X-Admin-Key header against
the configured dashboard key.
*/
package identity
