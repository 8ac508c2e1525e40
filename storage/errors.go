package storage

import "errors"

var ErrItemNotFound = errors.New("item not found in storage")
var ErrItemAlreadyExists = errors.New("item already exists in storage")

// ErrSessionClosed is returned when a vote is written to a session that is closed or past its deadline.
var ErrSessionClosed = errors.New("session is not accepting votes")
