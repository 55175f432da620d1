// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/middleware"
)

type EventHandler struct {
	bus *broadcast.Bus
}

func NewEventHandler(bus *broadcast.Bus) *EventHandler {
	return &EventHandler{bus: bus}
}

// Stream handles GET /events
// Server-sent events; an optional ?poll= query narrows the stream to one
// poll's activity (contact events carry no poll id and pass any filter).
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	pollFilter := r.URL.Query().Get("poll")

	events, cancel := h.bus.Subscribe()
	defer cancel()

	slog.Info("event stream opened", "remote", r.RemoteAddr, "poll_filter", pollFilter)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if pollFilter != "" && ev.PollID != "" && ev.PollID != pollFilter {
				continue
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
