package voting

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/metrics"
	"github.com/alex-pricope/coop-voting-system/storage"
	"golang.org/x/sync/singleflight"
)

// Result is the tally of one session. Final is set only for CLOSED sessions; any other
// result is provisional and recomputed on every call.
type Result struct {
	SessionID   int64     `json:"sessionId"`
	AgendaID    int64     `json:"agendaId"`
	AgendaTitle string    `json:"agendaTitle"`
	Total       int       `json:"total"`
	Yes         int       `json:"yes"`
	No          int       `json:"no"`
	YesPercent  float64   `json:"yesPercent"`
	NoPercent   float64   `json:"noPercent"`
	Approved    bool      `json:"approved"`
	Status      Status    `json:"status"`
	Final       bool      `json:"final"`
	TalliedAt   time.Time `json:"talliedAt"`
}

// Count applies the approval rule: approved only with strictly more SIM than NAO votes.
func Count(votes []*storage.Vote) (yes, no int, yesPercent, noPercent float64, approved bool) {
	for _, v := range votes {
		switch Choice(v.Choice) {
		case ChoiceYes:
			yes++
		case ChoiceNo:
			no++
		}
	}
	if total := yes + no; total > 0 {
		yesPercent = 100 * float64(yes) / float64(total)
		noPercent = 100 * float64(no) / float64(total)
	}
	return yes, no, yesPercent, noPercent, yes > no
}

type TallyEngine struct {
	sessions storage.SessionStorage
	agendas  storage.AgendaStorage
	votes    storage.VoteStorage
	cache    ResultCache
	group    singleflight.Group
	metrics  *metrics.Metrics
	now      func() time.Time
}

func (e *TallyEngine) Tally(ctx context.Context, sessionID int64) (*Result, error) {
	session, err := getSession(ctx, e.sessions, sessionID)
	if err != nil {
		return nil, err
	}

	status := StatusAt(session, e.now())
	if status == StatusClosed {
		return e.finalize(ctx, session)
	}

	result, err := e.compute(ctx, session, status)
	if err != nil {
		return nil, err
	}
	e.metrics.TallyComputed(false)
	return result, nil
}

// finalize returns the cached final result of a closed session, computing it once.
func (e *TallyEngine) finalize(ctx context.Context, session *storage.Session) (*Result, error) {
	cached, ok, err := e.cache.Get(ctx, session.ID)
	if err != nil {
		logging.Log.Warnf("TALLY: cache read for session %d failed: %v", session.ID, err)
	} else if ok {
		e.metrics.TallyCacheHit()
		return cached, nil
	}

	v, err, _ := e.group.Do(strconv.FormatInt(session.ID, 10), func() (any, error) {
		result, err := e.compute(ctx, session, StatusClosed)
		if err != nil {
			return nil, err
		}
		e.metrics.TallyComputed(true)

		stored, err := e.cache.Add(ctx, result)
		if err != nil {
			logging.Log.Warnf("TALLY: cache write for session %d failed: %v", session.ID, err)
			return result, nil
		}
		logging.Log.Infof("TALLY: final result for session %d: total=%d yes=%d no=%d approved=%t",
			stored.SessionID, stored.Total, stored.Yes, stored.No, stored.Approved)
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*Result)
	return &out, nil
}

func (e *TallyEngine) compute(ctx context.Context, session *storage.Session, status Status) (*Result, error) {
	votes, err := e.votes.GetBySession(ctx, session.ID)
	if err != nil {
		return nil, unavailable("list votes", err)
	}

	var title string
	agenda, err := e.agendas.Get(ctx, session.AgendaID)
	switch {
	case err == nil:
		title = agenda.Title
	case !errors.Is(err, storage.ErrItemNotFound):
		return nil, unavailable("get agenda item", err)
	}

	// A closed ledger stopped changing at the deadline, so final results carry it.
	talliedAt := e.now()
	if status == StatusClosed {
		talliedAt = session.ClosesAt
	}

	yes, no, yesPercent, noPercent, approved := Count(votes)
	return &Result{
		SessionID:   session.ID,
		AgendaID:    session.AgendaID,
		AgendaTitle: title,
		Total:       yes + no,
		Yes:         yes,
		No:          no,
		YesPercent:  yesPercent,
		NoPercent:   noPercent,
		Approved:    approved,
		Status:      status,
		Final:       status == StatusClosed,
		TalliedAt:   talliedAt,
	}, nil
}
