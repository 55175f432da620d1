// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	VotesAccepted    prometheus.Counter
	VotesDuplicate   prometheus.Counter
	UnknownOptions   prometheus.Counter
	ResponsesCleared prometheus.Counter
	ContactsCreated  prometheus.Counter
	ResponsesLinked  prometheus.Counter
}

// New registers the poll/contact counters with the given registerer.
// Pass prometheus.DefaultRegisterer in main; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VotesAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "polls_votes_accepted_total",
			Help: "Total number of poll responses accepted and stored",
		}),
		VotesDuplicate: factory.NewCounter(prometheus.CounterOpts{
			Name: "polls_votes_duplicate_total",
			Help: "Total number of submissions rejected as duplicates",
		}),
		UnknownOptions: factory.NewCounter(prometheus.CounterOpts{
			Name: "polls_unknown_option_codes_total",
			Help: "Total number of selected option codes skipped as unrecognized",
		}),
		ResponsesCleared: factory.NewCounter(prometheus.CounterOpts{
			Name: "polls_responses_cleared_total",
			Help: "Total number of poll responses deleted by admin clear",
		}),
		ContactsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "contacts_created_total",
			Help: "Total number of contacts captured from the contact form",
		}),
		ResponsesLinked: factory.NewCounter(prometheus.CounterOpts{
			Name: "contacts_responses_linked_total",
			Help: "Total number of anonymous poll responses linked to contacts",
		}),
	}
}

func (m *Metrics) RecordVoteAccepted() {
	if m == nil {
		return
	}
	m.VotesAccepted.Inc()
}

func (m *Metrics) RecordVoteDuplicate() {
	if m == nil {
		return
	}
	m.VotesDuplicate.Inc()
}

func (m *Metrics) RecordUnknownOption() {
	if m == nil {
		return
	}
	m.UnknownOptions.Inc()
}

func (m *Metrics) RecordResponsesCleared(n int64) {
	if m == nil {
		return
	}
	m.ResponsesCleared.Add(float64(n))
}

func (m *Metrics) RecordContactCreated() {
	if m == nil {
		return
	}
	m.ContactsCreated.Inc()
}

func (m *Metrics) RecordResponsesLinked(n int) {
	if m == nil {
		return
	}
	m.ResponsesLinked.Add(float64(n))
}
