package voting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/metrics"
	"github.com/alex-pricope/coop-voting-system/storage"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
	StatusClosed  Status = "CLOSED"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 60
)

// StatusAt derives the session status at now. EXPIRED and CLOSED both refuse votes; CLOSED
// additionally means the tally was finalized.
func StatusAt(s *storage.Session, now time.Time) Status {
	switch {
	case s.Closed:
		return StatusClosed
	case !now.Before(s.ClosesAt):
		return StatusExpired
	default:
		return StatusActive
	}
}

// SessionState is a session together with its agenda item and authoritative status.
type SessionState struct {
	Session *storage.Session
	Agenda  *storage.AgendaItem
	Status  Status
}

type Lifecycle struct {
	sessions    storage.SessionStorage
	agendas     storage.AgendaStorage
	locks       *keyedMutex[int64]
	agendaLocks *keyedMutex[int64]
	results     *TallyEngine
	metrics     *metrics.Metrics
	now         func() time.Time
}

func (l *Lifecycle) Status(s *storage.Session) Status {
	return StatusAt(s, l.now())
}

// Open starts a session for the agenda item. Expired sessions of the same item that were
// never closed get closed first; an active one makes Open fail.
func (l *Lifecycle) Open(ctx context.Context, agendaID int64, durationMinutes int) (*SessionState, error) {
	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		return nil, invalid("duracaoMinutos",
			fmt.Sprintf("duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes))
	}

	agenda, err := l.agenda(ctx, agendaID)
	if err != nil {
		return nil, err
	}

	unlock := l.agendaLocks.Lock(agendaID)
	defer unlock()

	existing, err := l.sessions.GetByAgenda(ctx, agendaID)
	if err != nil {
		return nil, unavailable("list sessions of agenda item", err)
	}
	now := l.now()
	for _, s := range existing {
		switch StatusAt(s, now) {
		case StatusActive:
			logging.Log.Warnf("SESSION: agenda item %d already has active session %d", agendaID, s.ID)
			return nil, fmt.Errorf("agenda item %d has session %d: %w", agendaID, s.ID, ErrSessionAlreadyOpen)
		case StatusExpired:
			if _, err := l.Close(ctx, s.ID); err != nil {
				return nil, err
			}
		}
	}

	session := &storage.Session{
		AgendaID: agendaID,
		OpenedAt: now,
		ClosesAt: now.Add(time.Duration(durationMinutes) * time.Minute),
	}
	if err := l.sessions.Create(ctx, session); err != nil {
		// Another instance opened one after the check above.
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			logging.Log.Warnf("SESSION: agenda item %d got a session from another instance", agendaID)
			return nil, fmt.Errorf("agenda item %d: %w", agendaID, ErrSessionAlreadyOpen)
		}
		return nil, unavailable("open session", err)
	}
	l.metrics.SessionOpened()

	logging.Log.Infof("SESSION: opened session %d for agenda item %d, closes at %s",
		session.ID, agendaID, session.ClosesAt.Format(time.RFC3339))
	return &SessionState{Session: session, Agenda: agenda, Status: StatusActive}, nil
}

func (l *Lifecycle) Get(ctx context.Context, id int64) (*SessionState, error) {
	session, err := l.session(ctx, id)
	if err != nil {
		return nil, err
	}
	return l.state(ctx, session)
}

func (l *Lifecycle) List(ctx context.Context, page, size int) (Page[*SessionState], error) {
	sessions, err := l.sessions.GetAll(ctx)
	if err != nil {
		return Page[*SessionState]{}, unavailable("list sessions", err)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })

	p := paginate(sessions, page, size)
	states := make([]*SessionState, 0, len(p.Items))
	agendas := make(map[int64]*storage.AgendaItem)
	now := l.now()
	for _, s := range p.Items {
		a, ok := agendas[s.AgendaID]
		if !ok {
			if a, err = l.agenda(ctx, s.AgendaID); err != nil {
				return Page[*SessionState]{}, err
			}
			agendas[s.AgendaID] = a
		}
		states = append(states, &SessionState{Session: s, Agenda: a, Status: StatusAt(s, now)})
	}

	return Page[*SessionState]{
		Items:         states,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}, nil
}

// Close finalizes a session whose deadline has passed. Closing a closed session is a no-op.
func (l *Lifecycle) Close(ctx context.Context, id int64) (*SessionState, error) {
	unlock := l.locks.Lock(id)
	defer unlock()

	session, err := l.session(ctx, id)
	if err != nil {
		return nil, err
	}

	switch StatusAt(session, l.now()) {
	case StatusActive:
		return nil, fmt.Errorf("session %d closes at %s: %w",
			id, session.ClosesAt.Format(time.RFC3339), ErrSessionStillActive)
	case StatusClosed:
		logging.Log.Debugf("SESSION: session %d already closed", id)
		return l.state(ctx, session)
	}

	if err := l.sessions.MarkClosed(ctx, id); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, notFound("session", id)
		}
		return nil, unavailable("close session", err)
	}
	session.Closed = true
	l.metrics.SessionClosed()
	logging.Log.Infof("SESSION: closed session %d", id)

	// The result cache is an optimization; a failure here only delays it to the next read.
	if _, err := l.results.finalize(ctx, session); err != nil {
		logging.Log.Warnf("SESSION: could not finalize tally for session %d: %v", id, err)
	}
	return l.state(ctx, session)
}

// CloseExpired closes every session whose deadline passed and returns how many it closed.
func (l *Lifecycle) CloseExpired(ctx context.Context) (int, error) {
	unclosed, err := l.sessions.GetUnclosed(ctx)
	if err != nil {
		return 0, unavailable("list unclosed sessions", err)
	}

	closed := 0
	var errs []error
	now := l.now()
	for _, s := range unclosed {
		if StatusAt(s, now) != StatusExpired {
			continue
		}
		if err := ctx.Err(); err != nil {
			return closed, err
		}
		if _, err := l.Close(ctx, s.ID); err != nil {
			logging.Log.Errorf("SESSION: failed to close expired session %d: %v", s.ID, err)
			errs = append(errs, err)
			continue
		}
		closed++
	}
	return closed, errors.Join(errs...)
}

func (l *Lifecycle) session(ctx context.Context, id int64) (*storage.Session, error) {
	return getSession(ctx, l.sessions, id)
}

func getSession(ctx context.Context, sessions storage.SessionStorage, id int64) (*storage.Session, error) {
	session, err := sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, notFound("session", id)
		}
		return nil, unavailable("get session", err)
	}
	return session, nil
}

func (l *Lifecycle) agenda(ctx context.Context, id int64) (*storage.AgendaItem, error) {
	agenda, err := l.agendas.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, notFound("agenda item", id)
		}
		return nil, unavailable("get agenda item", err)
	}
	return agenda, nil
}

func (l *Lifecycle) state(ctx context.Context, session *storage.Session) (*SessionState, error) {
	agenda, err := l.agenda(ctx, session.AgendaID)
	if err != nil {
		return nil, err
	}
	return &SessionState{Session: session, Agenda: agenda, Status: l.Status(session)}, nil
}
