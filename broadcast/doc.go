// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package broadcast is the in-process change-event bus. Handlers publish an
// Event after every successful mutating operation (vote accepted, poll
// toggled, responses cleared, contact captured) and any transport — the SSE
// relay in handlers, or whatever replaces it — subscribes and forwards.
// Delivery is fire-and-forget; viewers refetch poll state on receipt, so a
// dropped event costs one refresh, not correctness.
package broadcast
