// Package voting is the voting-session lifecycle and tally engine: member registry, agenda
// store, session lifecycle, vote ledger and tally, all written against the storage interfaces.
package voting

import (
	"time"

	"github.com/alex-pricope/coop-voting-system/metrics"
	"github.com/alex-pricope/coop-voting-system/storage"
)

type options struct {
	now     func() time.Time
	cache   ResultCache
	metrics *metrics.Metrics
}

type Option func(*options)

// WithClock replaces the wall clock. Every status decision reads time through it.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithResultCache(cache ResultCache) Option {
	return func(o *options) { o.cache = cache }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

type Service struct {
	Members  *Registry
	Agendas  *AgendaStore
	Sessions *Lifecycle
	Votes    *Ledger
	Results  *TallyEngine
}

func NewService(backend *storage.Backend, opts ...Option) *Service {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		cache: NewMemoryResultCache(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Cast and Close share the per-session critical section of this process. Storage
	// refuses votes for closed sessions and second open sessions across processes.
	sessionLocks := newKeyedMutex[int64]()

	results := &TallyEngine{
		sessions: backend.Sessions,
		agendas:  backend.Agendas,
		votes:    backend.Votes,
		cache:    o.cache,
		metrics:  o.metrics,
		now:      o.now,
	}

	return &Service{
		Members: &Registry{storage: backend.Members, now: o.now},
		Agendas: &AgendaStore{storage: backend.Agendas, now: o.now},
		Sessions: &Lifecycle{
			sessions:    backend.Sessions,
			agendas:     backend.Agendas,
			locks:       sessionLocks,
			agendaLocks: newKeyedMutex[int64](),
			results:     results,
			metrics:     o.metrics,
			now:         o.now,
		},
		Votes: &Ledger{
			sessions: backend.Sessions,
			members:  backend.Members,
			votes:    backend.Votes,
			locks:    sessionLocks,
			metrics:  o.metrics,
			now:      o.now,
		},
		Results: results,
	}
}
