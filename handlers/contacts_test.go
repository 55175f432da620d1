// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/contacts"
	"github.com/DrewRevelate/revelate-website-sub000/models"
	"github.com/DrewRevelate/revelate-website-sub000/polls"
	"github.com/DrewRevelate/revelate-website-sub000/testutil"
)

func newContactHandler(t *testing.T) (*sql.DB, *ContactHandler, *VoteHandler) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := contacts.NewStore(conn, nil)
	linker := contacts.NewLinker(conn, store, nil)
	bus := broadcast.NewBus()
	contactHandler := NewContactHandler(store, linker, bus, cfg)
	voteHandler := NewVoteHandler(polls.NewStore(conn, nil), bus, cfg)
	return conn, contactHandler, voteHandler
}

func TestCreateContact(t *testing.T) {
	_, handler, _ := newContactHandler(t)

	tests := []struct {
		name           string
		requestBody    models.CreateContactRequest
		expectedStatus int
	}{
		{
			name: "valid contact",
			requestBody: models.CreateContactRequest{
				Name:    "Ada Example",
				Email:   "ada@example.com",
				Company: "Example Corp",
				Message: "Tell me more",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    models.CreateContactRequest{Email: "ada@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			requestBody:    models.CreateContactRequest{Name: "Ada"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			requestBody:    models.CreateContactRequest{Name: "Ada", Email: "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/contacts", tt.requestBody, nil)
			req.RemoteAddr = "203.0.113.7:1234"
			w := httptest.NewRecorder()

			handler.CreateContact(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateContactResponse
				testutil.AssertJSON(t, w, &resp)
				if !strings.HasPrefix(resp.ContactUID, "CT-") {
					t.Errorf("Unexpected contact uid %q", resp.ContactUID)
				}
				if resp.LinkedResponses != 0 {
					t.Errorf("Expected no linked responses, got %d", resp.LinkedResponses)
				}
			}
		})
	}
}

func TestCreateContactLinksPollActivity(t *testing.T) {
	conn, contactHandler, voteHandler := newContactHandler(t)

	testutil.CreateTestPoll(t, conn, "lunch-pref", true, "pizza", "salad")

	// Anonymous vote first.
	voteReq := testutil.MakeRequest("POST", "/polls/lunch-pref/votes", models.SubmitVoteRequest{
		ClientToken: "tok-ada",
		Options:     []string{"pizza"},
	}, nil)
	voteReq.SetPathValue("id", "lunch-pref")
	voteReq.RemoteAddr = "203.0.113.7:1234"
	w := httptest.NewRecorder()
	voteHandler.SubmitVote(w, voteReq)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Contact form from the same browser: same token, same IP.
	contactReq := testutil.MakeRequest("POST", "/contacts", models.CreateContactRequest{
		Name:        "Ada Example",
		Email:       "ada@example.com",
		ClientToken: "tok-ada",
	}, nil)
	contactReq.RemoteAddr = "203.0.113.7:5678"
	w = httptest.NewRecorder()
	contactHandler.CreateContact(w, contactReq)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.CreateContactResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.LinkedResponses != 1 {
		t.Errorf("Expected 1 linked response, got %d", resp.LinkedResponses)
	}

	var stamped string
	if err := conn.QueryRow(`SELECT contact_uid FROM poll_response WHERE poll_id = 'lunch-pref'`).Scan(&stamped); err != nil {
		t.Fatalf("Failed to query response: %v", err)
	}
	if stamped != resp.ContactUID {
		t.Errorf("Response stamped with %q, expected %q", stamped, resp.ContactUID)
	}
}

func TestListContacts(t *testing.T) {
	conn, handler, _ := newContactHandler(t)

	testutil.CreateTestContact(t, conn, "Ada", "ada@example.com", "ip-1")
	testutil.CreateTestContact(t, conn, "Grace", "grace@example.com", "ip-2")

	req := testutil.MakeRequest("GET", "/admin/contacts", nil, adminHeaders())
	w := httptest.NewRecorder()

	handler.ListContacts(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var list []models.Contact
	testutil.AssertJSON(t, w, &list)
	if len(list) != 2 {
		t.Errorf("Expected 2 contacts, got %d", len(list))
	}
}

func TestGetContactDetail(t *testing.T) {
	conn, handler, _ := newContactHandler(t)

	uid := testutil.CreateTestContact(t, conn, "Ada", "ada@example.com", "ip-1")

	t.Run("found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/contacts/"+uid, nil, adminHeaders())
		req.SetPathValue("uid", uid)
		w := httptest.NewRecorder()

		handler.GetContact(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ContactDetailResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Contact.Name != "Ada" {
			t.Errorf("Unexpected contact %+v", resp.Contact)
		}
		if resp.Tags == nil || resp.Interactions == nil {
			t.Error("Tags and interactions must be present, empty lists not null")
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/contacts/CT-0", nil, adminHeaders())
		req.SetPathValue("uid", "CT-0")
		w := httptest.NewRecorder()

		handler.GetContact(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestUpdateContactStatus(t *testing.T) {
	conn, handler, _ := newContactHandler(t)

	uid := testutil.CreateTestContact(t, conn, "Ada", "ada@example.com", "ip-1")

	t.Run("moves the lifecycle", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/admin/contacts/"+uid+"/status", models.UpdateContactStatusRequest{
			Status: models.StatusQualified,
			Note:   "budget confirmed",
		}, adminHeaders())
		req.SetPathValue("uid", uid)
		w := httptest.NewRecorder()

		handler.UpdateContactStatus(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.Contact
		testutil.AssertJSON(t, w, &resp)
		if resp.Status != models.StatusQualified {
			t.Errorf("Expected status %q, got %q", models.StatusQualified, resp.Status)
		}
	})

	t.Run("missing status", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/admin/contacts/"+uid+"/status", models.UpdateContactStatusRequest{}, adminHeaders())
		req.SetPathValue("uid", uid)
		w := httptest.NewRecorder()

		handler.UpdateContactStatus(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown contact", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/admin/contacts/CT-0/status", models.UpdateContactStatusRequest{
			Status: models.StatusClosed,
		}, adminHeaders())
		req.SetPathValue("uid", "CT-0")
		w := httptest.NewRecorder()

		handler.UpdateContactStatus(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
