package controllers

import (
	"net/http"

	"github.com/alex-pricope/coop-voting-system/api/models"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/gin-gonic/gin"
)

type SessionsController struct {
	sessions *voting.Lifecycle
	votes    *voting.Ledger
	results  *voting.TallyEngine
}

func NewSessionsController(sessions *voting.Lifecycle, votes *voting.Ledger, results *voting.TallyEngine) *SessionsController {
	return &SessionsController{sessions: sessions, votes: votes, results: results}
}

func (c *SessionsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/sessoes")

	group.GET("", c.list)
	group.GET("/:id", c.get)
	group.POST("/:id/encerrar", c.close)
	group.GET("/:id/votos", c.listVotes)
	group.POST("/:id/votos", c.castVote)
	group.GET("/:id/resultado", c.result)
}

// list godoc
// @Summary List voting sessions
// @Tags sessoes
// @Produce json
// @Param page query int false "Page number, zero based"
// @Param size query int false "Page size"
// @Success 200 {object} models.PageResponse[models.SessionResponse]
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /sessoes [get]
func (c *SessionsController) list(g *gin.Context) {
	page, size, ok := pageParams(g)
	if !ok {
		return
	}
	p, err := c.sessions.List(g.Request.Context(), page, size)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformPage(p, models.TransformSessionState))
}

// get godoc
// @Summary Get a voting session
// @Description status is ACTIVE, EXPIRED or CLOSED, computed from the server clock
// @Tags sessoes
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /sessoes/{id} [get]
func (c *SessionsController) get(g *gin.Context) {
	id, ok := pathID(g)
	if !ok {
		return
	}
	state, err := c.sessions.Get(g.Request.Context(), id)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformSessionState(state))
}

// close godoc
// @Summary Close a voting session
// @Description Finalizes the tally of a session past its deadline. Closing twice is a no-op
// @Tags sessoes
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Session is still active"
// @Failure 503 {object} models.ErrorResponse
// @Router /sessoes/{id}/encerrar [post]
func (c *SessionsController) close(g *gin.Context) {
	id, ok := pathID(g)
	if !ok {
		return
	}
	state, err := c.sessions.Close(g.Request.Context(), id)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformSessionState(state))
}

// listVotes godoc
// @Summary List the votes of a session
// @Tags sessoes
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {array} models.VoteResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /sessoes/{id}/votos [get]
func (c *SessionsController) listVotes(g *gin.Context) {
	id, ok := pathID(g)
	if !ok {
		return
	}
	votes, err := c.votes.VotesFor(g.Request.Context(), id)
	if err != nil {
		respondError(g, err)
		return
	}

	response := make([]models.VoteResponse, 0, len(votes))
	for _, v := range votes {
		response = append(response, models.TransformVoteFromStorage(v))
	}
	g.JSON(http.StatusOK, response)
}

// castVote godoc
// @Summary Cast a vote
// @Description One vote per member per session, accepted only while the session is ACTIVE
// @Tags sessoes
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param vote body models.VoteCastRequest true "Vote"
// @Success 201 {object} models.VoteResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Member inactive or session not open"
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Member already voted"
// @Failure 503 {object} models.ErrorResponse
// @Router /sessoes/{id}/votos [post]
func (c *SessionsController) castVote(g *gin.Context) {
	id, ok := pathID(g)
	if !ok {
		return
	}
	var req models.VoteCastRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "", "invalid request format")
		return
	}
	if req.MemberID == "" {
		badRequest(g, "idAssociado", "idAssociado is required")
		return
	}

	vote, err := c.votes.Cast(g.Request.Context(), voting.Ballot{
		SessionID: id,
		MemberID:  req.MemberID,
		Choice:    req.Choice,
		CPF:       req.CPF,
	})
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusCreated, models.TransformVoteFromStorage(vote))
}

// result godoc
// @Summary Get the result of a session
// @Description Provisional while the session is not closed; final and stable once CLOSED
// @Tags sessoes
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.ResultResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /sessoes/{id}/resultado [get]
func (c *SessionsController) result(g *gin.Context) {
	id, ok := pathID(g)
	if !ok {
		return
	}
	result, err := c.results.Tally(g.Request.Context(), id)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformResult(result))
}
