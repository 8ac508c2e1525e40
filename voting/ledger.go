package voting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/metrics"
	"github.com/alex-pricope/coop-voting-system/storage"
)

type Choice string

const (
	ChoiceYes Choice = "SIM"
	ChoiceNo  Choice = "NAO"
)

func ParseChoice(s string) (Choice, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ChoiceYes), "YES":
		return ChoiceYes, nil
	case string(ChoiceNo), "NO":
		return ChoiceNo, nil
	}
	return "", invalid("opcao", "choice must be SIM or NAO")
}

// Ballot is a vote request. CPF is optional; when present it must match the member.
type Ballot struct {
	SessionID int64
	MemberID  string
	Choice    string
	CPF       string
}

type Ledger struct {
	sessions storage.SessionStorage
	members  storage.MemberStorage
	votes    storage.VoteStorage
	locks    *keyedMutex[int64]
	metrics  *metrics.Metrics
	now      func() time.Time
}

func (l *Ledger) Cast(ctx context.Context, b Ballot) (*storage.Vote, error) {
	vote, err := l.cast(ctx, b)
	if err != nil {
		l.metrics.VoteRejected(rejectionReason(err))
		return nil, err
	}
	l.metrics.VoteCast(vote.Choice)
	return vote, nil
}

func (l *Ledger) cast(ctx context.Context, b Ballot) (*storage.Vote, error) {
	choice, err := ParseChoice(b.Choice)
	if err != nil {
		return nil, err
	}
	if _, err := l.session(ctx, b.SessionID); err != nil {
		return nil, err
	}
	member, err := l.members.Get(ctx, b.MemberID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, notFound("member", b.MemberID)
		}
		return nil, unavailable("lookup member", err)
	}
	if b.CPF != "" && strings.TrimSpace(b.CPF) != member.CPF {
		return nil, invalid("cpf", "cpf does not match the member")
	}
	if !member.Active {
		logging.Log.Warnf("VOTE: inactive member %s tried to vote in session %d", member.ID, b.SessionID)
		return nil, fmt.Errorf("member %s: %w", member.ID, ErrMemberInactive)
	}

	// Status check, duplicate check and insert see one snapshot of time and ledger state. The lock
	// covers this process; the storage write repeats the status check against other instances.
	unlock := l.locks.Lock(b.SessionID)
	defer unlock()

	session, err := l.session(ctx, b.SessionID)
	if err != nil {
		return nil, err
	}
	now := l.now()
	if status := StatusAt(session, now); status != StatusActive {
		logging.Log.Warnf("VOTE: member %s tried to vote in %s session %d", member.ID, status, session.ID)
		return nil, fmt.Errorf("session %d is %s: %w", session.ID, status, ErrSessionNotOpen)
	}

	exists, err := l.votes.Exists(ctx, session.ID, member.ID)
	if err != nil {
		return nil, unavailable("check vote", err)
	}
	if exists {
		return nil, fmt.Errorf("member %s, session %d: %w", member.ID, session.ID, ErrDuplicateVote)
	}

	vote := &storage.Vote{
		SessionID: session.ID,
		MemberID:  member.ID,
		Choice:    string(choice),
		CastAt:    now,
	}
	if err := l.votes.Create(ctx, vote); err != nil {
		// Another instance wrote the same pair first, or closed the session in between.
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			return nil, fmt.Errorf("member %s, session %d: %w", member.ID, session.ID, ErrDuplicateVote)
		}
		if errors.Is(err, storage.ErrSessionClosed) {
			logging.Log.Warnf("VOTE: session %d closed before the vote of member %s was recorded", session.ID, member.ID)
			return nil, fmt.Errorf("session %d is %s: %w", session.ID, StatusClosed, ErrSessionNotOpen)
		}
		return nil, unavailable("record vote", err)
	}

	logging.Log.Infof("VOTE: member %s voted %s in session %d", member.ID, vote.Choice, session.ID)
	return vote, nil
}

// VotesFor returns the votes of a session in the order they were admitted.
func (l *Ledger) VotesFor(ctx context.Context, sessionID int64) ([]*storage.Vote, error) {
	if _, err := l.session(ctx, sessionID); err != nil {
		return nil, err
	}
	votes, err := l.votes.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, unavailable("list votes", err)
	}
	return votes, nil
}

func (l *Ledger) session(ctx context.Context, id int64) (*storage.Session, error) {
	return getSession(ctx, l.sessions, id)
}
