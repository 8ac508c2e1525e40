package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alex-pricope/coop-voting-system/api/models"
	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/gin-gonic/gin"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCpf         = "INVALID_CPF"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateMember    = "DUPLICATE_MEMBER"
	CodeDuplicateVote      = "DUPLICATE_VOTE"
	CodeSessionAlreadyOpen = "SESSION_ALREADY_OPEN"
	CodeSessionStillActive = "SESSION_STILL_ACTIVE"
	CodeMemberInactive     = "MEMBER_INACTIVE"
	CodeSessionNotOpen     = "SESSION_NOT_OPEN"
	CodeUnavailable        = "UNAVAILABLE"
)

var errorStatus = []struct {
	target error
	status int
	code   string
}{
	// InvalidCpf is also a validation error, so it has to match first.
	{voting.ErrInvalidCpf, http.StatusBadRequest, CodeInvalidCpf},
	{voting.ErrValidation, http.StatusBadRequest, CodeValidation},
	{voting.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{voting.ErrDuplicateMember, http.StatusConflict, CodeDuplicateMember},
	{voting.ErrDuplicateVote, http.StatusConflict, CodeDuplicateVote},
	{voting.ErrSessionAlreadyOpen, http.StatusConflict, CodeSessionAlreadyOpen},
	{voting.ErrSessionStillActive, http.StatusConflict, CodeSessionStillActive},
	{voting.ErrMemberInactive, http.StatusForbidden, CodeMemberInactive},
	{voting.ErrSessionNotOpen, http.StatusForbidden, CodeSessionNotOpen},
}

func respondError(g *gin.Context, err error) {
	status, code := http.StatusServiceUnavailable, CodeUnavailable
	for _, e := range errorStatus {
		if errors.Is(err, e.target) {
			status, code = e.status, e.code
			break
		}
	}

	body := &models.ErrorResponse{Error: err.Error(), Code: code}
	var verr *voting.ValidationError
	if errors.As(err, &verr) {
		body.Error = verr.Message
		body.Field = verr.Field
	}

	if status == http.StatusServiceUnavailable {
		logging.Log.Errorf("API: %s %s failed: %v", g.Request.Method, g.FullPath(), err)
		// Storage details stay in the log.
		body.Error = "service temporarily unavailable"
	} else {
		logging.Log.Warnf("API: %s %s rejected with %s: %v", g.Request.Method, g.FullPath(), code, err)
	}
	g.JSON(status, body)
}

func badRequest(g *gin.Context, field, message string) {
	g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: message, Code: CodeValidation, Field: field})
}

func pathID(g *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(g.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(g, "id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// pageParams reads page and size; the voting package clamps the values.
func pageParams(g *gin.Context) (page, size int, ok bool) {
	page, err := strconv.Atoi(g.DefaultQuery("page", "0"))
	if err != nil {
		badRequest(g, "page", "page must be an integer")
		return 0, 0, false
	}
	size, err = strconv.Atoi(g.DefaultQuery("size", strconv.Itoa(voting.DefaultPageSize)))
	if err != nil {
		badRequest(g, "size", "size must be an integer")
		return 0, 0, false
	}
	return page, size, true
}
