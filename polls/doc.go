// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls is the vote recording core: poll definitions, tallies, and the
deduplicating vote recorder.

# Store

Store wraps an injected *sql.DB. All mutation goes through its transactional
methods; tallies are recomputed from storage on every read.

	store := polls.NewStore(conn, m)

# Recording a Vote

	voter := identity.Resolve(clientIP, clientToken, cfg.IPHashSalt)
	result, err := store.SubmitVote(ctx, pollID, voter, []string{"pizza"}, meta)

The outcome is one of:

  - accepted: a new response row plus one join row per recognized option;
    result carries the fresh tally and the response uid
  - duplicate: result.AlreadyVoted is true with the current tally — a normal
    result, never an error
  - polls.ErrPollNotFound / polls.ErrPollInactive: fatal to the call

A voter matches an existing response if EITHER the client token OR the ip
hash matches. Unrecognized option codes are skipped with a warning, not
rejected.

# Race Safety

Duplicate detection is checked three times, each narrower than the last: a
fast-path query before the transaction, a re-check inside it, and finally the
UNIQUE (poll_id, client_token) / UNIQUE (poll_id, ip_hash) constraints. A
constraint violation on insert is reported as a duplicate, so two concurrent
submissions from one voter always yield exactly one stored response and two
normal responses to the clients.

# Administration

SetActive returns whether the flag actually changed; ClearResponses deletes a
poll's responses and joins atomically and returns the count. Both report a
missing poll as ErrPollNotFound.

# Seeding

Polls are created once at startup: Seed ensures each entry from a JSON seed
file exists. EnsureDefinition never re-syncs options for an existing poll.
*/
package polls
