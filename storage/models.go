package storage

import "time"

type Member struct {
	ID        string    `dynamodbav:"PK"`
	CPF       string    `dynamodbav:"CPF"`
	Name      string    `dynamodbav:"Name"`
	Active    bool      `dynamodbav:"Active"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

type AgendaItem struct {
	ID          int64     `dynamodbav:"PK"`
	Title       string    `dynamodbav:"Title"`
	Description string    `dynamodbav:"Description"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt"`
}

type Session struct {
	ID       int64     `dynamodbav:"PK"`
	AgendaID int64     `dynamodbav:"AgendaID"`
	OpenedAt time.Time `dynamodbav:"OpenedAt"`
	ClosesAt time.Time `dynamodbav:"ClosesAt"`
	Closed   bool      `dynamodbav:"Closed"`
}

type Vote struct {
	SessionID int64     `dynamodbav:"PK"` // One partition per session
	MemberID  string    `dynamodbav:"SK"` // Member id, unique inside the session partition
	ID        int64     `dynamodbav:"ID"`
	Choice    string    `dynamodbav:"Choice"`
	CastAt    time.Time `dynamodbav:"CastAt"`
}

// keyItem is a row of the keys table: sequence counters and uniqueness guards.
type keyItem struct {
	Key   string `dynamodbav:"PK"`
	Value int64  `dynamodbav:"Value,omitempty"`
	Ref   string `dynamodbav:"Ref,omitempty"`
}
