// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DrewRevelate/revelate-website-sub000/cliparse"
	"github.com/DrewRevelate/revelate-website-sub000/db"
	"github.com/DrewRevelate/revelate-website-sub000/identity"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full schema.
// Every test gets its own database; nothing leaks between tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		DatabaseURL:    ":memory:",
		DatabaseDriver: "sqlite",
		IPHashSalt:     "test-ip-salt",
		AdminKey:       "test-admin-key",
	}
}

// CreateTestPoll creates a poll with the given option ids (label defaults to
// the id, display order follows argument order).
func CreateTestPoll(t *testing.T, conn *sql.DB, pollID string, active bool, optionIDs ...string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO poll_definition (id, title, description, is_active, created_at)
		VALUES ($1, 'Test Poll', 'A test poll', $2, $3)
	`, pollID, active, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, optionID := range optionIDs {
		_, err := conn.Exec(`
			INSERT INTO poll_option (id, poll_id, label, display_order)
			VALUES ($1, $2, $3, $4)
		`, optionID, pollID, optionID, i)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}
}

// SubmitTestVote inserts a response row directly, bypassing the recorder.
// Returns the response id.
func SubmitTestVote(t *testing.T, conn *sql.DB, pollID string, voter identity.VoterIdentity, optionIDs ...string) string {
	t.Helper()

	responseID, err := identity.GenerateID(16)
	if err != nil {
		t.Fatalf("Failed to generate response id: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO poll_response (id, poll_id, uid, client_token, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, responseID, pollID, identity.NewUID("PR"), voter.ClientToken, voter.IPHash, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	for _, optionID := range optionIDs {
		_, err := conn.Exec(`
			INSERT INTO poll_response_option (response_id, option_id)
			VALUES ($1, $2)
		`, responseID, optionID)
		if err != nil {
			t.Fatalf("Failed to create test response option: %v", err)
		}
	}

	return responseID
}

// CreateTestContact inserts a contact row directly and returns its uid.
func CreateTestContact(t *testing.T, conn *sql.DB, name, email, ipHash string) string {
	t.Helper()

	uid := identity.NewUID("CT")
	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO contact (id, uid, name, email, ip_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'new', $6, $7)
	`, uuid.NewString(), uid, name, email, ipHash, now, now)
	if err != nil {
		t.Fatalf("Failed to create test contact: %v", err)
	}

	return uid
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
