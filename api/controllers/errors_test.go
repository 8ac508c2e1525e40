package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apitesting "github.com/alex-pricope/coop-voting-system/api/controllers/testing"
	"github.com/alex-pricope/coop-voting-system/api/models"
	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	logging.Log = logrus.New()
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &voting.ValidationError{Field: "titulo", Message: "too long", Err: voting.ErrValidation}, http.StatusBadRequest, CodeValidation},
		{"invalid cpf", voting.ValidateCPF("1"), http.StatusBadRequest, CodeInvalidCpf},
		{"not found", fmt.Errorf("session 1: %w", voting.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"duplicate member", voting.ErrDuplicateMember, http.StatusConflict, CodeDuplicateMember},
		{"duplicate vote", voting.ErrDuplicateVote, http.StatusConflict, CodeDuplicateVote},
		{"already open", voting.ErrSessionAlreadyOpen, http.StatusConflict, CodeSessionAlreadyOpen},
		{"still active", voting.ErrSessionStillActive, http.StatusConflict, CodeSessionStillActive},
		{"member inactive", voting.ErrMemberInactive, http.StatusForbidden, CodeMemberInactive},
		{"session not open", voting.ErrSessionNotOpen, http.StatusForbidden, CodeSessionNotOpen},
		{"storage failure", fmt.Errorf("list votes: %w: %w", voting.ErrUnavailable, errors.New("dial tcp: refused")), http.StatusServiceUnavailable, CodeUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := httptest.NewRecorder()
			g, _ := gin.CreateTestContext(res)
			g.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(g, tc.err)
			require.Equal(t, tc.status, res.Code)

			body, err := apitesting.DecodeResponse[models.ErrorResponse](res)
			require.NoError(t, err)
			assert.Equal(t, tc.code, body.Code)
			assert.NotContains(t, body.Error, "dial tcp", "storage details must not leak")
		})
	}
}
