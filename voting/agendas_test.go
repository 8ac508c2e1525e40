package voting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAgenda(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	t.Run("Happy path - limits are inclusive", func(t *testing.T) {
		item, err := f.svc.Agendas.Create(ctx, strings.Repeat("t", MaxTitleLength), strings.Repeat("d", MaxDescriptionLength))
		require.NoError(t, err)
		assert.NotZero(t, item.ID)

		got, err := f.svc.Agendas.Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.Title, got.Title)
	})

	cases := []struct {
		name        string
		title       string
		description string
		field       string
	}{
		{"title too long", strings.Repeat("t", MaxTitleLength+1), "descricao", "titulo"},
		{"empty title", "   ", "descricao", "titulo"},
		{"description too long", "Titulo", strings.Repeat("d", MaxDescriptionLength+1), "descricao"},
		{"empty description", "Titulo", "", "descricao"},
	}
	for _, tc := range cases {
		t.Run("Unhappy path - "+tc.name, func(t *testing.T) {
			_, err := f.svc.Agendas.Create(ctx, tc.title, tc.description)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	t.Run("Unhappy path - unknown agenda item", func(t *testing.T) {
		_, err := f.svc.Agendas.Get(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListAgendasNewestFirst(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	first, err := f.svc.Agendas.Create(ctx, "Primeira", "primeira pauta")
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	second, err := f.svc.Agendas.Create(ctx, "Segunda", "segunda pauta")
	require.NoError(t, err)

	p, err := f.svc.Agendas.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.Equal(t, second.ID, p.Items[0].ID)
	assert.Equal(t, first.ID, p.Items[1].ID)
}
