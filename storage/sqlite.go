package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type memberRecord struct {
	ID        string    `gorm:"primaryKey;size:32"`
	CPF       string    `gorm:"uniqueIndex;size:11;not null"`
	Name      string    `gorm:"size:100;not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

func (memberRecord) TableName() string { return "members" }

type agendaRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:500;not null"`
	CreatedAt   time.Time `gorm:"index;not null"`
}

func (agendaRecord) TableName() string { return "agenda_items" }

type sessionRecord struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	AgendaID int64     `gorm:"index;not null"`
	OpenedAt time.Time `gorm:"not null"`
	ClosesAt time.Time `gorm:"not null"`
	Closed   bool      `gorm:"index;not null"`
}

func (sessionRecord) TableName() string { return "voting_sessions" }

type voteRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	SessionID int64     `gorm:"uniqueIndex:idx_votes_session_member;not null"`
	MemberID  string    `gorm:"uniqueIndex:idx_votes_session_member;size:32;not null"`
	Choice    string    `gorm:"size:3;not null"`
	CastAt    time.Time `gorm:"not null"`
}

func (voteRecord) TableName() string { return "votes" }

// NewSQLiteBackend opens (or creates) the SQLite database at path. An empty path uses a private
// in-memory database.
func NewSQLiteBackend(path string) (*Backend, error) {
	dsn := ":memory:"
	if path != "" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	if path == "" {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&memberRecord{}, &agendaRecord{}, &sessionRecord{}, &voteRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	for _, stmt := range sqliteGuards {
		if err := db.Exec(stmt).Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("migrate sqlite guards: %w", err)
		}
	}
	logging.Log.Infof("SQLITE: database ready at %s", dsn)

	return &Backend{
		Members:  &SQLiteMemberStorage{db: db},
		Agendas:  &SQLiteAgendaStorage{db: db},
		Sessions: &SQLiteSessionStorage{db: db},
		Votes:    &SQLiteVoteStorage{db: db},
		close:    sqlDB.Close,
	}, nil
}

const errVoteSessionClosed = "vote refused: session closed"

// sqliteGuards keep one unclosed session per agenda item and refuse votes for closed sessions
// inside the writing statement itself.
var sqliteGuards = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_open_agenda ON voting_sessions(agenda_id) WHERE closed = 0`,
	`CREATE TRIGGER IF NOT EXISTS trg_votes_open_session BEFORE INSERT ON votes
	WHEN NOT EXISTS (SELECT 1 FROM voting_sessions WHERE id = NEW.session_id AND closed = 0)
	BEGIN SELECT RAISE(ABORT, '` + errVoteSessionClosed + `'); END`,
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	return err
}

type SQLiteMemberStorage struct {
	db *gorm.DB
}

func (s *SQLiteMemberStorage) Create(ctx context.Context, member *Member) error {
	rec := memberRecord{
		ID:        member.ID,
		CPF:       member.CPF,
		Name:      member.Name,
		Active:    member.Active,
		CreatedAt: member.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			logging.Log.Warnf("MEMBER: member %s or its cpf already exists", member.ID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("MEMBER: failed to create member: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteMemberStorage) Get(ctx context.Context, id string) (*Member, error) {
	var rec memberRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return rec.toMember(), nil
}

func (s *SQLiteMemberStorage) GetAll(ctx context.Context) ([]*Member, error) {
	var recs []memberRecord
	if err := s.db.WithContext(ctx).Order("created_at, rowid").Find(&recs).Error; err != nil {
		logging.Log.Errorf("MEMBER: failed to list members: %v", err)
		return nil, err
	}
	members := make([]*Member, 0, len(recs))
	for i := range recs {
		members = append(members, recs[i].toMember())
	}
	return members, nil
}

func (s *SQLiteMemberStorage) SetActive(ctx context.Context, id string, active bool) (*Member, error) {
	res := s.db.WithContext(ctx).Model(&memberRecord{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		logging.Log.Errorf("MEMBER: failed to set active=%t for %s: %v", active, id, res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}
	return s.Get(ctx, id)
}

func (r *memberRecord) toMember() *Member {
	return &Member{ID: r.ID, CPF: r.CPF, Name: r.Name, Active: r.Active, CreatedAt: r.CreatedAt}
}

type SQLiteAgendaStorage struct {
	db *gorm.DB
}

func (s *SQLiteAgendaStorage) Create(ctx context.Context, item *AgendaItem) error {
	rec := agendaRecord{Title: item.Title, Description: item.Description, CreatedAt: item.CreatedAt}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		logging.Log.Errorf("AGENDA: failed to create agenda item: %v", err)
		return err
	}
	item.ID = rec.ID
	return nil
}

func (s *SQLiteAgendaStorage) Get(ctx context.Context, id int64) (*AgendaItem, error) {
	var rec agendaRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return rec.toAgendaItem(), nil
}

func (s *SQLiteAgendaStorage) GetAll(ctx context.Context) ([]*AgendaItem, error) {
	var recs []agendaRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		logging.Log.Errorf("AGENDA: failed to list agenda items: %v", err)
		return nil, err
	}
	items := make([]*AgendaItem, 0, len(recs))
	for i := range recs {
		items = append(items, recs[i].toAgendaItem())
	}
	return items, nil
}

func (r *agendaRecord) toAgendaItem() *AgendaItem {
	return &AgendaItem{ID: r.ID, Title: r.Title, Description: r.Description, CreatedAt: r.CreatedAt}
}

type SQLiteSessionStorage struct {
	db *gorm.DB
}

func (s *SQLiteSessionStorage) Create(ctx context.Context, session *Session) error {
	rec := sessionRecord{
		AgendaID: session.AgendaID,
		OpenedAt: session.OpenedAt,
		ClosesAt: session.ClosesAt,
		Closed:   session.Closed,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			logging.Log.Warnf("SESSION: agenda item %d already has an unclosed session", session.AgendaID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("SESSION: failed to create session: %v", err)
		return err
	}
	session.ID = rec.ID
	return nil
}

func (s *SQLiteSessionStorage) Get(ctx context.Context, id int64) (*Session, error) {
	var rec sessionRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return rec.toSession(), nil
}

func (s *SQLiteSessionStorage) GetAll(ctx context.Context) ([]*Session, error) {
	return s.find(ctx, s.db.WithContext(ctx))
}

func (s *SQLiteSessionStorage) GetByAgenda(ctx context.Context, agendaID int64) ([]*Session, error) {
	return s.find(ctx, s.db.WithContext(ctx).Where("agenda_id = ?", agendaID))
}

func (s *SQLiteSessionStorage) GetUnclosed(ctx context.Context) ([]*Session, error) {
	return s.find(ctx, s.db.WithContext(ctx).Where("closed = ?", false))
}

func (s *SQLiteSessionStorage) MarkClosed(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Model(&sessionRecord{}).Where("id = ?", id).Update("closed", true)
	if res.Error != nil {
		logging.Log.Errorf("SESSION: failed to mark session %d closed: %v", id, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *SQLiteSessionStorage) find(_ context.Context, query *gorm.DB) ([]*Session, error) {
	var recs []sessionRecord
	if err := query.Order("id").Find(&recs).Error; err != nil {
		logging.Log.Errorf("SESSION: failed to list sessions: %v", err)
		return nil, err
	}
	sessions := make([]*Session, 0, len(recs))
	for i := range recs {
		sessions = append(sessions, recs[i].toSession())
	}
	return sessions, nil
}

func (r *sessionRecord) toSession() *Session {
	return &Session{ID: r.ID, AgendaID: r.AgendaID, OpenedAt: r.OpenedAt, ClosesAt: r.ClosesAt, Closed: r.Closed}
}

type SQLiteVoteStorage struct {
	db *gorm.DB
}

// Create checks the deadline against the session row; the closed flag is enforced again by the
// insert trigger, which runs inside the insert's write transaction.
func (s *SQLiteVoteStorage) Create(ctx context.Context, vote *Vote) error {
	var session sessionRecord
	if err := s.db.WithContext(ctx).First(&session, vote.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionClosed
		}
		logging.Log.Errorf("VOTE: failed to read session %d: %v", vote.SessionID, err)
		return err
	}
	if session.Closed || !vote.CastAt.Before(session.ClosesAt) {
		return ErrSessionClosed
	}

	rec := voteRecord{
		SessionID: vote.SessionID,
		MemberID:  vote.MemberID,
		Choice:    vote.Choice,
		CastAt:    vote.CastAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if strings.Contains(err.Error(), errVoteSessionClosed) {
			logging.Log.Warnf("VOTE: session %d closed before the vote of member %s was written", vote.SessionID, vote.MemberID)
			return ErrSessionClosed
		}
		if isUniqueViolation(err) {
			logging.Log.Warnf("VOTE: member %s already voted in session %d", vote.MemberID, vote.SessionID)
			return ErrItemAlreadyExists
		}
		logging.Log.Errorf("VOTE: failed to create vote: %v", err)
		return err
	}
	vote.ID = rec.ID
	return nil
}

func (s *SQLiteVoteStorage) GetBySession(ctx context.Context, sessionID int64) ([]*Vote, error) {
	var recs []voteRecord
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&recs).Error; err != nil {
		logging.Log.Errorf("VOTE: failed to list votes for session %d: %v", sessionID, err)
		return nil, err
	}
	votes := make([]*Vote, 0, len(recs))
	for _, r := range recs {
		votes = append(votes, &Vote{
			SessionID: r.SessionID,
			MemberID:  r.MemberID,
			ID:        r.ID,
			Choice:    r.Choice,
			CastAt:    r.CastAt,
		})
	}
	return votes, nil
}

func (s *SQLiteVoteStorage) Exists(ctx context.Context, sessionID int64, memberID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&voteRecord{}).
		Where("session_id = ? AND member_id = ?", sessionID, memberID).
		Count(&count).Error
	if err != nil {
		logging.Log.Errorf("VOTE: failed to check vote for session %d member %s: %v", sessionID, memberID, err)
		return false, err
	}
	return count > 0, nil
}
