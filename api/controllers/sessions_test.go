package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	apitesting "github.com/alex-pricope/coop-voting-system/api/controllers/testing"
	"github.com/alex-pricope/coop-voting-system/api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAgenda(t *testing.T, router *gin.Engine) models.AgendaResponse {
	t.Helper()
	res := apitesting.PerformRequest(router, http.MethodPost, "/pautas",
		models.AgendaCreateRequest{Title: "Nova sede", Description: "Compra do terreno"}, nil)
	require.Equal(t, http.StatusCreated, res.Code)
	agenda, err := apitesting.DecodeResponse[models.AgendaResponse](res)
	require.NoError(t, err)
	return agenda
}

func openSession(t *testing.T, router *gin.Engine, agendaID int64, minutes int) models.SessionResponse {
	t.Helper()
	res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/pautas/%d/sessoes", agendaID),
		models.SessionOpenRequest{DurationMinutes: &minutes}, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	session, err := apitesting.DecodeResponse[models.SessionResponse](res)
	require.NoError(t, err)
	return session
}

func TestAgendaEndpoints(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	t.Run("Happy path - create, get and list", func(t *testing.T) {
		agenda := createAgenda(t, router)

		res := apitesting.PerformRequest(router, http.MethodGet, fmt.Sprintf("/pautas/%d", agenda.ID), nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), `"titulo":"Nova sede"`)

		res = apitesting.PerformRequest(router, http.MethodGet, "/pautas", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		page, err := apitesting.DecodeResponse[models.PageResponse[models.AgendaResponse]](res)
		require.NoError(t, err)
		assert.Equal(t, 1, page.TotalElements)
		assert.Equal(t, 20, page.Size)
	})

	t.Run("Unhappy path - title too long", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, "/pautas",
			models.AgendaCreateRequest{Title: strings.Repeat("a", 101), Description: "descricao"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Code)
		body, err := apitesting.DecodeResponse[models.ErrorResponse](res)
		require.NoError(t, err)
		assert.Equal(t, CodeValidation, body.Code)
		assert.Equal(t, "titulo", body.Field)
	})

	t.Run("Unhappy path - id is not a number", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodGet, "/pautas/abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - unknown agenda item", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodGet, "/pautas/999", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestOpenSessionEndpoint(t *testing.T) {
	router, _, clock := setupTestRouter(t)
	agenda := createAgenda(t, router)

	t.Run("Unhappy path - explicit zero duration", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/pautas/%d/sessoes", agenda.ID),
			map[string]any{"duracaoMinutos": 0}, nil)
		require.Equal(t, http.StatusBadRequest, res.Code)
		assert.Contains(t, res.Body.String(), "duracaoMinutos")
	})

	t.Run("Unhappy path - duration out of range", func(t *testing.T) {
		minutes := 61
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/pautas/%d/sessoes", agenda.ID),
			models.SessionOpenRequest{DurationMinutes: &minutes}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - open", func(t *testing.T) {
		session := openSession(t, router, agenda.ID, 1)
		assert.Equal(t, agenda.ID, session.AgendaID)
		assert.Equal(t, "Nova sede", session.AgendaTitle)
		assert.Equal(t, "ACTIVE", session.Status)
		assert.False(t, session.Closed)
	})

	t.Run("Unhappy path - already open", func(t *testing.T) {
		minutes := 5
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/pautas/%d/sessoes", agenda.ID),
			models.SessionOpenRequest{DurationMinutes: &minutes}, nil)
		require.Equal(t, http.StatusConflict, res.Code)
		assert.Contains(t, res.Body.String(), CodeSessionAlreadyOpen)
	})

	t.Run("Happy path - reopen after expiry", func(t *testing.T) {
		clock.Advance(time.Minute)
		openSession(t, router, agenda.ID, 1)
	})
}

func TestOpenSessionDefaultDuration(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	t.Run("Happy path - duration omitted", func(t *testing.T) {
		agenda := createAgenda(t, router)
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/pautas/%d/sessoes", agenda.ID), map[string]any{}, nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		session, err := apitesting.DecodeResponse[models.SessionResponse](res)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, session.ClosesAt.Sub(session.OpenedAt))
		assert.Equal(t, "ACTIVE", session.Status)
	})

	t.Run("Happy path - empty body", func(t *testing.T) {
		agenda := createAgenda(t, router)
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/pautas/%d/sessoes", agenda.ID), nil, nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		session, err := apitesting.DecodeResponse[models.SessionResponse](res)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, session.ClosesAt.Sub(session.OpenedAt))
	})

	t.Run("Unhappy path - malformed body", func(t *testing.T) {
		agenda := createAgenda(t, router)
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/pautas/%d/sessoes", agenda.ID),
			map[string]any{"duracaoMinutos": "dez"}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestVotingFlow(t *testing.T) {
	router, svc, clock := setupTestRouter(t)
	ctx := t.Context()

	agenda := createAgenda(t, router)
	session := openSession(t, router, agenda.ID, 1)
	votesPath := fmt.Sprintf("/sessoes/%d/votos", session.ID)

	maria, err := svc.Members.Register(ctx, "12345678901", "Maria Souza")
	require.NoError(t, err)
	joao, err := svc.Members.Register(ctx, "10987654321", "Joao Pereira")
	require.NoError(t, err)
	pedro, err := svc.Members.Register(ctx, "22222222222", "Pedro Alves")
	require.NoError(t, err)
	_, err = svc.Members.SetActive(ctx, pedro.ID, false)
	require.NoError(t, err)

	t.Run("Happy path - cast vote", func(t *testing.T) {
		clock.Advance(10 * time.Second)
		res := apitesting.PerformRequest(router, http.MethodPost, votesPath,
			models.VoteCastRequest{MemberID: maria.ID, Choice: "SIM"}, nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		vote, err := apitesting.DecodeResponse[models.VoteResponse](res)
		require.NoError(t, err)
		assert.Equal(t, maria.ID, vote.MemberID)
		assert.Equal(t, session.ID, vote.SessionID)
		assert.Equal(t, "SIM", vote.Choice)
	})

	t.Run("Unhappy path - duplicate vote", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, votesPath,
			models.VoteCastRequest{MemberID: maria.ID, Choice: "NAO"}, nil)
		require.Equal(t, http.StatusConflict, res.Code)
		assert.Contains(t, res.Body.String(), CodeDuplicateVote)
	})

	t.Run("Unhappy path - inactive member", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, votesPath,
			models.VoteCastRequest{MemberID: pedro.ID, Choice: "SIM"}, nil)
		require.Equal(t, http.StatusForbidden, res.Code)
		assert.Contains(t, res.Body.String(), CodeMemberInactive)
	})

	t.Run("Unhappy path - invalid choice", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, votesPath,
			models.VoteCastRequest{MemberID: joao.ID, Choice: "TALVEZ"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Code)
		assert.Contains(t, res.Body.String(), `"field":"opcao"`)
	})

	t.Run("Unhappy path - missing member id", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, votesPath,
			models.VoteCastRequest{Choice: "SIM"}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - provisional result", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodGet, fmt.Sprintf("/sessoes/%d/resultado", session.ID), nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		result, err := apitesting.DecodeResponse[models.ResultResponse](res)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		assert.False(t, result.Final)
		assert.Equal(t, "ACTIVE", result.Status)
	})

	t.Run("Unhappy path - close while active", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/sessoes/%d/encerrar", session.ID), nil, nil)
		require.Equal(t, http.StatusConflict, res.Code)
		assert.Contains(t, res.Body.String(), CodeSessionStillActive)
	})

	t.Run("Unhappy path - vote after deadline", func(t *testing.T) {
		clock.Advance(51 * time.Second)
		res := apitesting.PerformRequest(router, http.MethodPost, votesPath,
			models.VoteCastRequest{MemberID: joao.ID, Choice: "NAO"}, nil)
		require.Equal(t, http.StatusForbidden, res.Code)
		assert.Contains(t, res.Body.String(), CodeSessionNotOpen)

		res = apitesting.PerformRequest(router, http.MethodGet, fmt.Sprintf("/sessoes/%d", session.ID), nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), `"status":"EXPIRED"`)
	})

	t.Run("Happy path - close and final result", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodPost, fmt.Sprintf("/sessoes/%d/encerrar", session.ID), nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body.String(), `"encerrada":true`)

		first := apitesting.PerformRequest(router, http.MethodGet, fmt.Sprintf("/sessoes/%d/resultado", session.ID), nil, nil)
		require.Equal(t, http.StatusOK, first.Code)
		clock.Advance(time.Hour)
		second := apitesting.PerformRequest(router, http.MethodGet, fmt.Sprintf("/sessoes/%d/resultado", session.ID), nil, nil)
		assert.Equal(t, first.Body.String(), second.Body.String())

		result, err := apitesting.DecodeResponse[models.ResultResponse](first)
		require.NoError(t, err)
		assert.True(t, result.Final)
		assert.True(t, result.Approved)
		assert.Equal(t, float64(100), result.YesPercent)
		assert.Equal(t, "CLOSED", result.Status)
	})

	t.Run("Happy path - list votes and sessions", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodGet, votesPath, nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		votes, err := apitesting.DecodeResponse[[]models.VoteResponse](res)
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, maria.ID, votes[0].MemberID)

		res = apitesting.PerformRequest(router, http.MethodGet, "/sessoes", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		page, err := apitesting.DecodeResponse[models.PageResponse[models.SessionResponse]](res)
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, "CLOSED", page.Content[0].Status)
	})

	t.Run("Unhappy path - unknown session", func(t *testing.T) {
		res := apitesting.PerformRequest(router, http.MethodGet, "/sessoes/404/resultado", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}
