// Package metrics exposes the Prometheus counters of the voting core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coop_voting"

type Metrics struct {
	votesCast      *prometheus.CounterVec
	votesRejected  *prometheus.CounterVec
	sessionsOpened prometheus.Counter
	sessionsClosed prometheus.Counter
	tallies        *prometheus.CounterVec
	tallyCacheHits prometheus.Counter
}

// New registers the collectors on reg. A nil *Metrics is valid and records nothing.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		votesCast: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "number of admitted votes by choice",
		}, []string{"choice"}),
		votesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_rejected_total",
			Help:      "number of rejected votes by reason",
		}, []string{"reason"}),
		sessionsOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "number of voting sessions opened",
		}),
		sessionsClosed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_closed_total",
			Help:      "number of voting sessions closed",
		}),
		tallies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tallies_computed_total",
			Help:      "number of tallies computed from the ledger, final or provisional",
		}, []string{"kind"}),
		tallyCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tally_cache_hits_total",
			Help:      "number of final results served from the cache",
		}),
	}
}

func (m *Metrics) VoteCast(choice string) {
	if m == nil {
		return
	}
	m.votesCast.WithLabelValues(choice).Inc()
}

func (m *Metrics) VoteRejected(reason string) {
	if m == nil {
		return
	}
	m.votesRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsOpened.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsClosed.Inc()
}

func (m *Metrics) TallyComputed(final bool) {
	if m == nil {
		return
	}
	kind := "provisional"
	if final {
		kind = "final"
	}
	m.tallies.WithLabelValues(kind).Inc()
}

func (m *Metrics) TallyCacheHit() {
	if m == nil {
		return
	}
	m.tallyCacheHits.Inc()
}
