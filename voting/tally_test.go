package voting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func votes(choices ...Choice) []*storage.Vote {
	out := make([]*storage.Vote, 0, len(choices))
	for _, c := range choices {
		out = append(out, &storage.Vote{Choice: string(c)})
	}
	return out
}

func TestCount(t *testing.T) {
	cases := []struct {
		name     string
		votes    []*storage.Vote
		yes, no  int
		yesPct   float64
		approved bool
	}{
		{"no votes", nil, 0, 0, 0, false},
		{"tie is rejected", votes(ChoiceYes, ChoiceYes, ChoiceYes, ChoiceNo, ChoiceNo, ChoiceNo), 3, 3, 50, false},
		{"majority yes", votes(ChoiceYes, ChoiceYes, ChoiceYes, ChoiceNo), 3, 1, 75, true},
		{"majority no", votes(ChoiceNo, ChoiceNo, ChoiceYes), 1, 2, 100.0 / 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			yes, no, yesPct, noPct, approved := Count(tc.votes)
			assert.Equal(t, tc.yes, yes)
			assert.Equal(t, tc.no, no)
			assert.InDelta(t, tc.yesPct, yesPct, 1e-9)
			if yes+no > 0 {
				assert.InDelta(t, 100, yesPct+noPct, 1e-9)
			} else {
				assert.Zero(t, noPct)
			}
			assert.Equal(t, tc.approved, approved)
		})
	}
}

func TestTally(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	t.Run("Happy path - zero votes", func(t *testing.T) {
		s := f.openSession(t, 1)
		result, err := f.svc.Results.Tally(ctx, s.Session.ID)
		require.NoError(t, err)
		assert.Zero(t, result.Total)
		assert.Zero(t, result.YesPercent)
		assert.Zero(t, result.NoPercent)
		assert.False(t, result.Approved)
		assert.False(t, result.Final)
		assert.Equal(t, StatusActive, result.Status)
	})

	t.Run("Unhappy path - unknown session", func(t *testing.T) {
		_, err := f.svc.Results.Tally(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTallyFinalIsStable(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	s := f.openSession(t, 1)
	id := s.Session.ID

	for i := 0; i < 6; i++ {
		m := f.member(t, fmt.Sprintf("%011d", i+1), "Associado Teste")
		choice := "SIM"
		if i%2 == 1 {
			choice = "NAO"
		}
		_, err := f.svc.Votes.Cast(ctx, Ballot{SessionID: id, MemberID: m.ID, Choice: choice})
		require.NoError(t, err)
	}

	provisional, err := f.svc.Results.Tally(ctx, id)
	require.NoError(t, err)
	assert.False(t, provisional.Final)

	f.clock.Advance(time.Minute)
	expired, err := f.svc.Results.Tally(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, expired.Status)
	assert.False(t, expired.Final)

	_, err = f.svc.Sessions.Close(ctx, id)
	require.NoError(t, err)

	first, err := f.svc.Results.Tally(ctx, id)
	require.NoError(t, err)
	assert.True(t, first.Final)
	assert.Equal(t, 6, first.Total)
	assert.False(t, first.Approved, "a tie is not approved")

	f.clock.Advance(time.Hour)
	second, err := f.svc.Results.Tally(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, second, "final result must not change between reads")

	second.Total = 99
	third, err := f.svc.Results.Tally(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, third.Total, "callers get copies of the cached result")

	assert.Equal(t, float64(1), f.counter(t, "coop_voting_tallies_computed_total", map[string]string{"kind": "final"}))
	assert.Equal(t, float64(3), f.counter(t, "coop_voting_tally_cache_hits_total", nil))
}

func TestTallyClosedConcurrently(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	s := f.openSession(t, 1)
	m := f.member(t, "12345678901", "Maria Souza")
	_, err := f.svc.Votes.Cast(ctx, Ballot{SessionID: s.Session.ID, MemberID: m.ID, Choice: "SIM"})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	require.NoError(t, f.backend.Sessions.MarkClosed(ctx, s.Session.ID))

	const readers = 16
	results := make([]*Result, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.clock.Advance(time.Millisecond)
			r, err := f.svc.Results.Tally(ctx, s.Session.ID)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
	assert.True(t, results[0].Approved)
	assert.InDelta(t, 100, results[0].YesPercent, 1e-9)
}

// unavailableCache fails every call, as a Redis outage would.
type unavailableCache struct{}

func (unavailableCache) Get(context.Context, int64) (*Result, bool, error) {
	return nil, false, errors.New("cache down")
}

func (unavailableCache) Add(context.Context, *Result) (*Result, error) {
	return nil, errors.New("cache down")
}

func TestTallyFinalWithoutCache(t *testing.T) {
	logging.Log = logrus.New()
	clock := newTestClock()
	svc := NewService(storage.NewMemoryBackend(), WithClock(clock.Now), WithResultCache(unavailableCache{}))
	ctx := context.Background()

	agenda, err := svc.Agendas.Create(ctx, "Nova sede", "Compra do terreno")
	require.NoError(t, err)
	s, err := svc.Sessions.Open(ctx, agenda.ID, 1)
	require.NoError(t, err)
	m, err := svc.Members.Register(ctx, "12345678901", "Maria Souza")
	require.NoError(t, err)
	_, err = svc.Votes.Cast(ctx, Ballot{SessionID: s.Session.ID, MemberID: m.ID, Choice: "NAO"})
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = svc.Sessions.Close(ctx, s.Session.ID)
	require.NoError(t, err, "a cache outage must not fail the close")

	first, err := svc.Results.Tally(ctx, s.Session.ID)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	second, err := svc.Results.Tally(ctx, s.Session.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second, "recomputed final results must be identical")
	assert.True(t, first.Final)
	assert.Equal(t, 1, first.No)
	assert.True(t, s.Session.ClosesAt.Equal(first.TalliedAt), "final results are stamped with the deadline")
}
