package storage

import (
	"context"
	"sync"
)

// NewMemoryBackend keeps everything in process memory. Used for local runs and tests.
func NewMemoryBackend() *Backend {
	sessions := &MemorySessionStorage{byID: map[int64]*Session{}}
	return &Backend{
		Members:  &MemoryMemberStorage{byID: map[string]*Member{}, byCPF: map[string]string{}},
		Agendas:  &MemoryAgendaStorage{byID: map[int64]*AgendaItem{}},
		Sessions: sessions,
		Votes:    &MemoryVoteStorage{sessions: sessions, bySession: map[int64][]*Vote{}, voted: map[voteKey]struct{}{}},
	}
}

type MemoryMemberStorage struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*Member
	byCPF map[string]string
}

func (s *MemoryMemberStorage) Create(_ context.Context, member *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[member.ID]; ok {
		return ErrItemAlreadyExists
	}
	if _, ok := s.byCPF[member.CPF]; ok {
		return ErrItemAlreadyExists
	}
	m := *member
	s.byID[m.ID] = &m
	s.byCPF[m.CPF] = m.ID
	s.order = append(s.order, m.ID)
	return nil
}

func (s *MemoryMemberStorage) Get(_ context.Context, id string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	out := *m
	return &out, nil
}

func (s *MemoryMemberStorage) GetAll(_ context.Context) ([]*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]*Member, 0, len(s.order))
	for _, id := range s.order {
		m := *s.byID[id]
		members = append(members, &m)
	}
	return members, nil
}

func (s *MemoryMemberStorage) SetActive(_ context.Context, id string, active bool) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	m.Active = active
	out := *m
	return &out, nil
}

type MemoryAgendaStorage struct {
	mu     sync.RWMutex
	lastID int64
	order  []int64
	byID   map[int64]*AgendaItem
}

func (s *MemoryAgendaStorage) Create(_ context.Context, item *AgendaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	item.ID = s.lastID
	a := *item
	s.byID[a.ID] = &a
	s.order = append(s.order, a.ID)
	return nil
}

func (s *MemoryAgendaStorage) Get(_ context.Context, id int64) (*AgendaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	out := *a
	return &out, nil
}

func (s *MemoryAgendaStorage) GetAll(_ context.Context) ([]*AgendaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*AgendaItem, 0, len(s.order))
	for _, id := range s.order {
		a := *s.byID[id]
		items = append(items, &a)
	}
	return items, nil
}

type MemorySessionStorage struct {
	mu     sync.RWMutex
	lastID int64
	order  []int64
	byID   map[int64]*Session
}

func (s *MemorySessionStorage) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.byID {
		if c.AgendaID == session.AgendaID && !c.Closed {
			return ErrItemAlreadyExists
		}
	}
	s.lastID++
	session.ID = s.lastID
	c := *session
	s.byID[c.ID] = &c
	s.order = append(s.order, c.ID)
	return nil
}

func (s *MemorySessionStorage) Get(_ context.Context, id int64) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	out := *c
	return &out, nil
}

func (s *MemorySessionStorage) GetAll(_ context.Context) ([]*Session, error) {
	return s.filter(func(*Session) bool { return true }), nil
}

func (s *MemorySessionStorage) GetByAgenda(_ context.Context, agendaID int64) ([]*Session, error) {
	return s.filter(func(c *Session) bool { return c.AgendaID == agendaID }), nil
}

func (s *MemorySessionStorage) GetUnclosed(_ context.Context) ([]*Session, error) {
	return s.filter(func(c *Session) bool { return !c.Closed }), nil
}

func (s *MemorySessionStorage) MarkClosed(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[id]
	if !ok {
		return ErrItemNotFound
	}
	c.Closed = true
	return nil
}

func (s *MemorySessionStorage) filter(keep func(*Session) bool) []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*Session, 0)
	for _, id := range s.order {
		if c := s.byID[id]; keep(c) {
			out := *c
			sessions = append(sessions, &out)
		}
	}
	return sessions
}

type voteKey struct {
	sessionID int64
	memberID  string
}

// MemoryVoteStorage reads session state through sessions. Create holds the session lock
// before its own, so MarkClosed and Create never interleave.
type MemoryVoteStorage struct {
	sessions  *MemorySessionStorage
	mu        sync.RWMutex
	lastID    int64
	bySession map[int64][]*Vote
	voted     map[voteKey]struct{}
}

func (s *MemoryVoteStorage) Create(_ context.Context, vote *Vote) error {
	s.sessions.mu.RLock()
	defer s.sessions.mu.RUnlock()

	session, ok := s.sessions.byID[vote.SessionID]
	if !ok || session.Closed || !vote.CastAt.Before(session.ClosesAt) {
		return ErrSessionClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey{sessionID: vote.SessionID, memberID: vote.MemberID}
	if _, ok := s.voted[key]; ok {
		return ErrItemAlreadyExists
	}
	s.lastID++
	vote.ID = s.lastID
	v := *vote
	s.voted[key] = struct{}{}
	s.bySession[v.SessionID] = append(s.bySession[v.SessionID], &v)
	return nil
}

func (s *MemoryVoteStorage) GetBySession(_ context.Context, sessionID int64) ([]*Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.bySession[sessionID]
	votes := make([]*Vote, 0, len(stored))
	for _, v := range stored {
		out := *v
		votes = append(votes, &out)
	}
	return votes, nil
}

func (s *MemoryVoteStorage) Exists(_ context.Context, sessionID int64, memberID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.voted[voteKey{sessionID: sessionID, memberID: memberID}]
	return ok, nil
}
