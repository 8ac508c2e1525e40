package storage

import (
	"context"
)

type MemberStorage interface {
	// Create fails with ErrItemAlreadyExists when the id or the CPF is taken.
	Create(ctx context.Context, member *Member) error
	Get(ctx context.Context, id string) (*Member, error)
	GetAll(ctx context.Context) ([]*Member, error)
	SetActive(ctx context.Context, id string, active bool) (*Member, error)
}

type AgendaStorage interface {
	// Create assigns the next sequential ID to the item.
	Create(ctx context.Context, item *AgendaItem) error
	Get(ctx context.Context, id int64) (*AgendaItem, error)
	GetAll(ctx context.Context) ([]*AgendaItem, error)
}

type SessionStorage interface {
	// Create assigns the next sequential ID to the session. It fails with ErrItemAlreadyExists
	// while another session of the same agenda item is not marked closed.
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id int64) (*Session, error)
	GetAll(ctx context.Context) ([]*Session, error)
	GetByAgenda(ctx context.Context, agendaID int64) ([]*Session, error)
	GetUnclosed(ctx context.Context) ([]*Session, error)
	// MarkClosed is idempotent. Once it returns, Create on VoteStorage refuses the session.
	MarkClosed(ctx context.Context, id int64) error
}

type VoteStorage interface {
	// Create assigns the next sequential ID and fails with ErrItemAlreadyExists
	// when the member already voted in the session. It fails with ErrSessionClosed unless the
	// session exists, is not marked closed and closes after vote.CastAt. The check and the
	// write are atomic with respect to MarkClosed.
	Create(ctx context.Context, vote *Vote) error
	// GetBySession returns the votes of a session ordered by ID.
	GetBySession(ctx context.Context, sessionID int64) ([]*Vote, error)
	Exists(ctx context.Context, sessionID int64, memberID string) (bool, error)
}

// Backend groups the storages of one persistence technology.
type Backend struct {
	Members  MemberStorage
	Agendas  AgendaStorage
	Sessions SessionStorage
	Votes    VoteStorage

	close func() error
}

func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}
