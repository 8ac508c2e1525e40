package voting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/metrics"
	"github.com/alex-pricope/coop-voting-system/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	svc      *Service
	clock    *testClock
	registry *prometheus.Registry
	backend  *storage.Backend
}

func setupService(t *testing.T) *fixture {
	t.Helper()
	logging.Log = logrus.New()

	clock := newTestClock()
	registry := prometheus.NewRegistry()
	backend := storage.NewMemoryBackend()
	return &fixture{
		svc:      NewService(backend, WithClock(clock.Now), WithMetrics(metrics.New(registry))),
		clock:    clock,
		registry: registry,
		backend:  backend,
	}
}

// counter sums the samples of a counter family whose labels include every given pair.
func (f *fixture) counter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err, "failed to gather metrics")

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			matched := 0
			for _, pair := range m.GetLabel() {
				if v, ok := labels[pair.GetName()]; ok && v == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func (f *fixture) member(t *testing.T, cpf, name string) *storage.Member {
	t.Helper()
	m, err := f.svc.Members.Register(context.Background(), cpf, name)
	require.NoError(t, err, "failed to register member")
	return m
}

func (f *fixture) openSession(t *testing.T, minutes int) *SessionState {
	t.Helper()
	agenda, err := f.svc.Agendas.Create(context.Background(), "Nova sede", "Compra do terreno para a nova sede")
	require.NoError(t, err, "failed to create agenda item")
	s, err := f.svc.Sessions.Open(context.Background(), agenda.ID, minutes)
	require.NoError(t, err, "failed to open session")
	return s
}
