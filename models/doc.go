// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: poll_id, title, description, options
  - SubmitVoteRequest: client_token, options, metadata
  - TogglePollRequest: active
  - CreateContactRequest: name, email, company, phone, message, client_token
  - UpdateContactStatusRequest: status, note

# Response Types

Types for JSON responses:

  - SubmitVoteResponse: already_voted, response_uid, client_token, tally
  - PollStateResponse: poll, options, tally, has_voted
  - CreatePollResponse: poll_id, created
  - TogglePollResponse: poll_id, active, changed
  - ClearPollResponse: poll_id, deleted
  - CreateContactResponse: contact_uid, linked_responses
  - AdminSummaryResponse: totals for the dashboard
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - PollDefinition: static question + active flag
  - PollOption: one answer choice with display order
  - PollResponse: one accepted vote (client token + ip hash carried, never serialized)
  - OptionCount: one tally entry, zero-filled for unvoted options
  - Contact: captured lead with status lifecycle
  - Tag / Interaction: contact annotations

# Constants

Contact status values:

	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusClosed    = "closed"

Broadcast event kinds:

	EventVote        = "vote"
	EventPollStatus  = "poll_status"
	EventPollCleared = "poll_cleared"
	EventContact     = "contact"
*/
package models
