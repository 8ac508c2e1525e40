package voting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	CPFLength = 11

	memberIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	memberIDLength   = 16
	minNameLength    = 3
	maxNameLength    = 100
)

type SearchField string

const (
	SearchByName SearchField = "name"
	SearchByCPF  SearchField = "cpf"
)

type Registry struct {
	storage storage.MemberStorage
	now     func() time.Time
}

// ValidateCPF checks the structure only: exactly 11 ASCII digits.
func ValidateCPF(cpf string) error {
	if len(cpf) != CPFLength || strings.ContainsFunc(cpf, func(r rune) bool { return r < '0' || r > '9' }) {
		return &ValidationError{Field: "cpf", Message: ErrInvalidCpf.Error(), Err: ErrInvalidCpf}
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return "", invalid("nome", fmt.Sprintf("name must have between %d and %d characters", minNameLength, maxNameLength))
	}
	if strings.ContainsFunc(name, unicode.IsDigit) {
		return "", invalid("nome", "name must not contain digits")
	}
	return name, nil
}

func (r *Registry) Register(ctx context.Context, cpf, name string) (*storage.Member, error) {
	cpf = strings.TrimSpace(cpf)
	if err := ValidateCPF(cpf); err != nil {
		return nil, err
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	id, err := gonanoid.Generate(memberIDAlphabet, memberIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate member id: %w", err)
	}

	member := &storage.Member{
		ID:        id,
		CPF:       cpf,
		Name:      name,
		Active:    true,
		CreatedAt: r.now(),
	}
	if err := r.storage.Create(ctx, member); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			logging.Log.Warnf("MEMBER: cpf %s already registered", cpf)
			return nil, ErrDuplicateMember
		}
		return nil, unavailable("register member", err)
	}

	logging.Log.Infof("MEMBER: registered member %s", member.ID)
	return member, nil
}

func (r *Registry) Lookup(ctx context.Context, id string) (*storage.Member, error) {
	member, err := r.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, notFound("member", id)
		}
		return nil, unavailable("lookup member", err)
	}
	return member, nil
}

func (r *Registry) List(ctx context.Context, page, size int) (Page[*storage.Member], error) {
	members, err := r.all(ctx)
	if err != nil {
		return Page[*storage.Member]{}, err
	}
	return paginate(members, page, size), nil
}

// Search matches names case-insensitively by substring and CPFs by prefix. An empty query
// matches every member.
func (r *Registry) Search(ctx context.Context, query string, field SearchField, page, size int) (Page[*storage.Member], error) {
	var match func(m *storage.Member) bool
	query = strings.TrimSpace(query)
	switch field {
	case SearchByName:
		needle := strings.ToLower(query)
		match = func(m *storage.Member) bool { return strings.Contains(strings.ToLower(m.Name), needle) }
	case SearchByCPF:
		match = func(m *storage.Member) bool { return strings.HasPrefix(m.CPF, query) }
	default:
		return Page[*storage.Member]{}, invalid("field", "search field must be name or cpf")
	}

	members, err := r.all(ctx)
	if err != nil {
		return Page[*storage.Member]{}, err
	}
	matched := make([]*storage.Member, 0, len(members))
	for _, m := range members {
		if match(m) {
			matched = append(matched, m)
		}
	}
	return paginate(matched, page, size), nil
}

// SetActive is the administrative eligibility toggle.
func (r *Registry) SetActive(ctx context.Context, id string, active bool) (*storage.Member, error) {
	member, err := r.storage.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, notFound("member", id)
		}
		return nil, unavailable("set member active", err)
	}
	logging.Log.Infof("MEMBER: member %s active=%t", id, active)
	return member, nil
}

func (r *Registry) all(ctx context.Context) ([]*storage.Member, error) {
	members, err := r.storage.GetAll(ctx)
	if err != nil {
		return nil, unavailable("list members", err)
	}
	// Scans return rows in no fixed order; the id breaks registration-time ties.
	sort.Slice(members, func(i, j int) bool {
		if !members[i].CreatedAt.Equal(members[j].CreatedAt) {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		}
		return members[i].ID < members[j].ID
	})
	return members, nil
}
