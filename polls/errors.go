// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"

	"github.com/DrewRevelate/revelate-website-sub000/db"
)

var (
	// ErrPollNotFound is fatal to the call that raised it, never to the process.
	ErrPollNotFound = errors.New("poll not found")

	// ErrPollInactive rejects submissions while an admin has the poll toggled off.
	ErrPollInactive = errors.New("poll is not active")

	// ErrMissingClientToken guards the dedup invariant: an empty token would
	// make all tokenless voters collide on the unique constraint.
	ErrMissingClientToken = errors.New("client token is required")
)

func isUniqueViolation(err error) bool {
	return db.IsUniqueViolation(err)
}
