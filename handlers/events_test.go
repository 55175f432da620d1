// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/models"
)

func waitForSubscriber(t *testing.T, bus *broadcast.Bus) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if bus.Subscribers() > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Stream never subscribed to the bus")
}

func TestEventStreamDeliversEvents(t *testing.T) {
	bus := broadcast.NewBus()
	handler := NewEventHandler(bus)

	ctx, cancelReq := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.Stream(w, req)
		close(done)
	}()

	waitForSubscriber(t, bus)
	bus.Publish(broadcast.Event{Kind: models.EventVote, PollID: "lunch-pref"})
	time.Sleep(50 * time.Millisecond)
	cancelReq()
	<-done

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "data: ") {
		t.Fatalf("Expected an SSE data frame, got %q", body)
	}
	if !strings.Contains(body, `"kind":"vote"`) || !strings.Contains(body, `"poll_id":"lunch-pref"`) {
		t.Errorf("Unexpected event payload: %q", body)
	}
}

func TestEventStreamPollFilter(t *testing.T) {
	bus := broadcast.NewBus()
	handler := NewEventHandler(bus)

	ctx, cancelReq := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events?poll=lunch-pref", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.Stream(w, req)
		close(done)
	}()

	waitForSubscriber(t, bus)
	bus.Publish(broadcast.Event{Kind: models.EventVote, PollID: "other-poll"})
	bus.Publish(broadcast.Event{Kind: models.EventVote, PollID: "lunch-pref"})
	// Contact events have no poll id and always pass the filter.
	bus.Publish(broadcast.Event{Kind: models.EventContact})
	time.Sleep(50 * time.Millisecond)
	cancelReq()
	<-done

	body := w.Body.String()
	if strings.Contains(body, "other-poll") {
		t.Errorf("Filtered event leaked through: %q", body)
	}
	if !strings.Contains(body, `"poll_id":"lunch-pref"`) {
		t.Errorf("Expected the matching event, got %q", body)
	}
	if !strings.Contains(body, `"kind":"contact"`) {
		t.Errorf("Expected the contact event, got %q", body)
	}
}
