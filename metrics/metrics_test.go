package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.VoteCast("SIM")
	m.VoteCast("SIM")
	m.VoteCast("NAO")
	m.VoteRejected("duplicate_vote")
	m.SessionOpened()
	m.SessionClosed()
	m.TallyComputed(true)
	m.TallyComputed(false)
	m.TallyCacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.votesCast.WithLabelValues("SIM")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.votesCast.WithLabelValues("NAO")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.votesRejected.WithLabelValues("duplicate_vote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsClosed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tallies.WithLabelValues("final")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tallyCacheHits))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.VoteCast("SIM")
		m.VoteRejected("x")
		m.SessionOpened()
		m.SessionClosed()
		m.TallyComputed(true)
		m.TallyCacheHit()
	})
}
