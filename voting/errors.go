package voting

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCpf         = errors.New("cpf must have exactly 11 numeric digits")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateMember    = errors.New("a member with this cpf is already registered")
	ErrDuplicateVote      = errors.New("member already voted in this session")
	ErrSessionAlreadyOpen = errors.New("agenda item already has an active voting session")
	ErrSessionStillActive = errors.New("voting session is still active")
	ErrMemberInactive     = errors.New("member is not active")
	ErrSessionNotOpen     = errors.New("voting session is not open")
	ErrUnavailable        = errors.New("storage unavailable")
)

// ValidationError reports malformed input for one request field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// rejectionReason is the metrics label of a refused vote.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMemberInactive):
		return "member_inactive"
	case errors.Is(err, ErrSessionNotOpen):
		return "session_not_open"
	case errors.Is(err, ErrDuplicateVote):
		return "duplicate_vote"
	default:
		return "unavailable"
	}
}
