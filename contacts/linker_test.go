// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contacts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DrewRevelate/revelate-website-sub000/contacts"
	"github.com/DrewRevelate/revelate-website-sub000/identity"
	"github.com/DrewRevelate/revelate-website-sub000/models"
	"github.com/DrewRevelate/revelate-website-sub000/testutil"
)

func TestLinkStampsResponsesTagsAndLogs(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := contacts.NewStore(conn, nil)
	linker := contacts.NewLinker(conn, store, nil)
	ctx := context.Background()

	testutil.CreateTestPoll(t, conn, "lunch-pref", true, "pizza")
	testutil.CreateTestPoll(t, conn, "team-size", true, "small")

	// Two anonymous responses: one matched by ip hash, one by client token.
	testutil.SubmitTestVote(t, conn, "lunch-pref", identity.VoterIdentity{ClientToken: "tok-other", IPHash: "ip-ada"}, "pizza")
	testutil.SubmitTestVote(t, conn, "team-size", identity.VoterIdentity{ClientToken: "tok-ada", IPHash: "ip-elsewhere"}, "small")

	contact := models.Contact{Name: "Ada", Email: "ada@example.com", IPHash: "ip-ada"}
	require.NoError(t, store.Create(ctx, &contact))

	linked := linker.Link(ctx, &contact, "tok-ada")
	require.Equal(t, 2, linked)

	var stamped int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM poll_response WHERE contact_uid = $1`, contact.UID).Scan(&stamped))
	require.Equal(t, 2, stamped)

	tags, err := store.ListTags(ctx, contact.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	require.Equal(t, models.TagPollParticipant, tags[0].Name)

	log, err := store.ListInteractions(ctx, contact.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	require.Equal(t, contacts.KindPollLink, log[0].Kind)
	require.Contains(t, log[0].Note, "2 poll response(s)")
}

func TestLinkNoMatchIsQuietNoop(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := contacts.NewStore(conn, nil)
	linker := contacts.NewLinker(conn, store, nil)
	ctx := context.Background()

	contact := models.Contact{Name: "Ada", Email: "ada@example.com", IPHash: "ip-ada"}
	require.NoError(t, store.Create(ctx, &contact))

	linked := linker.Link(ctx, &contact, "tok-ada")
	require.Zero(t, linked)

	// No tag, no interaction entry for an empty match.
	tags, err := store.ListTags(ctx, contact.ID)
	require.NoError(t, err)
	require.Empty(t, tags)

	log, err := store.ListInteractions(ctx, contact.ID)
	require.NoError(t, err)
	require.Empty(t, log)
}

func TestLinkSkipsAlreadyStampedResponses(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := contacts.NewStore(conn, nil)
	linker := contacts.NewLinker(conn, store, nil)
	ctx := context.Background()

	testutil.CreateTestPoll(t, conn, "lunch-pref", true, "pizza")
	testutil.SubmitTestVote(t, conn, "lunch-pref", identity.VoterIdentity{ClientToken: "tok-ada", IPHash: "ip-ada"}, "pizza")

	first := models.Contact{Name: "Ada", Email: "ada@example.com", IPHash: "ip-ada"}
	require.NoError(t, store.Create(ctx, &first))
	require.Equal(t, 1, linker.Link(ctx, &first, "tok-ada"))

	// A later contact sharing the identity must not steal the response.
	second := models.Contact{Name: "Also Ada", Email: "ada2@example.com", IPHash: "ip-ada"}
	require.NoError(t, store.Create(ctx, &second))
	require.Zero(t, linker.Link(ctx, &second, "tok-ada"))

	var stamped string
	require.NoError(t, conn.QueryRow(`SELECT contact_uid FROM poll_response`).Scan(&stamped))
	require.Equal(t, first.UID, stamped)
}
