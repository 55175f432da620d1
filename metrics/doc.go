// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the prometheus counters for the polling and
// lead-capture core. All Record helpers are nil-safe so stores can run
// without instrumentation in tests.
package metrics
