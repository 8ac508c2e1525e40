package voting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/storage"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

type AgendaStore struct {
	storage storage.AgendaStorage
	now     func() time.Time
}

func validateText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "must not be empty")
	}
	if utf8.RuneCountInString(value) > max {
		return "", invalid(field, fmt.Sprintf("must have at most %d characters", max))
	}
	return value, nil
}

func (a *AgendaStore) Create(ctx context.Context, title, description string) (*storage.AgendaItem, error) {
	title, err := validateText("titulo", title, MaxTitleLength)
	if err != nil {
		return nil, err
	}
	description, err = validateText("descricao", description, MaxDescriptionLength)
	if err != nil {
		return nil, err
	}

	item := &storage.AgendaItem{
		Title:       title,
		Description: description,
		CreatedAt:   a.now(),
	}
	if err := a.storage.Create(ctx, item); err != nil {
		return nil, unavailable("create agenda item", err)
	}

	logging.Log.Infof("AGENDA: created agenda item %d", item.ID)
	return item, nil
}

func (a *AgendaStore) Get(ctx context.Context, id int64) (*storage.AgendaItem, error) {
	item, err := a.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, notFound("agenda item", id)
		}
		return nil, unavailable("get agenda item", err)
	}
	return item, nil
}

// List returns the newest agenda items first.
func (a *AgendaStore) List(ctx context.Context, page, size int) (Page[*storage.AgendaItem], error) {
	items, err := a.storage.GetAll(ctx)
	if err != nil {
		return Page[*storage.AgendaItem]{}, unavailable("list agenda items", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return paginate(items, page, size), nil
}
