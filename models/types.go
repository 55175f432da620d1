// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Contact status lifecycle constants (free-form, these are the defaults)
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusClosed    = "closed"
)

// TagPollParticipant is applied to contacts matched to prior poll activity.
const TagPollParticipant = "poll-participant"

// Broadcast event kinds
const (
	EventVote        = "vote"
	EventPollStatus  = "poll_status"
	EventPollCleared = "poll_cleared"
	EventContact     = "contact"
)

// Request types

type CreatePollRequest struct {
	PollID      string              `json:"poll_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Options     []CreateOptionEntry `json:"options"`
}

type CreateOptionEntry struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
}

type SubmitVoteRequest struct {
	ClientToken string       `json:"client_token"`
	Options     []string     `json:"options"`
	Metadata    VoteMetadata `json:"metadata"`
}

// VoteMetadata is free-form client context. Persisted, never interpreted.
type VoteMetadata struct {
	UserAgent  string `json:"user_agent,omitempty"`
	ScreenSize string `json:"screen_size,omitempty"`
	SlideID    string `json:"slide_id,omitempty"`
	Referrer   string `json:"referrer,omitempty"`
}

type TogglePollRequest struct {
	Active bool `json:"active"`
}

type CreateContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	ClientToken string `json:"client_token"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Response types

type SubmitVoteResponse struct {
	AlreadyVoted bool          `json:"already_voted"`
	ResponseUID  string        `json:"response_uid,omitempty"`
	ClientToken  string        `json:"client_token,omitempty"`
	Tally        []OptionCount `json:"tally"`
}

type PollStateResponse struct {
	Poll     PollDefinition `json:"poll"`
	Options  []PollOption   `json:"options"`
	Tally    []OptionCount  `json:"tally"`
	HasVoted bool           `json:"has_voted"`
}

type CreatePollResponse struct {
	PollID  string `json:"poll_id"`
	Created bool   `json:"created"`
}

type TogglePollResponse struct {
	PollID  string `json:"poll_id"`
	Active  bool   `json:"active"`
	Changed bool   `json:"changed"`
}

type ClearPollResponse struct {
	PollID  string `json:"poll_id"`
	Deleted int64  `json:"deleted"`
}

type CreateContactResponse struct {
	ContactUID      string `json:"contact_uid"`
	LinkedResponses int    `json:"linked_responses"`
}

type ContactDetailResponse struct {
	Contact      Contact       `json:"contact"`
	Tags         []Tag         `json:"tags"`
	Interactions []Interaction `json:"interactions"`
}

type AdminSummaryResponse struct {
	Polls         int64  `json:"polls"`
	Responses     int64  `json:"responses"`
	Contacts      int64  `json:"contacts"`
	ResponsesText string `json:"responses_text"`
	ContactsText  string `json:"contacts_text"`
	LastResponse  string `json:"last_response,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type PollDefinition struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type PollOption struct {
	ID           string `json:"id"`
	PollID       string `json:"poll_id"`
	Label        string `json:"label"`
	DisplayOrder int    `json:"display_order"`
}

type PollWithOptions struct {
	Poll    PollDefinition `json:"poll"`
	Options []PollOption   `json:"options"`
}

type PollResponse struct {
	ID          string       `json:"id"`
	PollID      string       `json:"poll_id"`
	UID         string       `json:"uid"`
	ClientToken string       `json:"-"` // Never expose in JSON
	IPHash      string       `json:"-"` // Never expose in JSON
	ContactUID  *string      `json:"contact_uid,omitempty"`
	Metadata    VoteMetadata `json:"metadata"`
	CreatedAt   time.Time    `json:"created_at"`
}

// OptionCount is one tally entry. Tallies always carry every option of the
// poll in display order, including zero-vote options.
type OptionCount struct {
	OptionID     string `json:"option_id"`
	Label        string `json:"label"`
	DisplayOrder int    `json:"display_order"`
	Votes        int    `json:"votes"`
}

type Contact struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	IPHash    string    `json:"-"` // Never expose in JSON
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Interaction struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Kind      string    `json:"kind"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
