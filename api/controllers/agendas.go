package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/alex-pricope/coop-voting-system/api/models"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/gin-gonic/gin"
)

type AgendasController struct {
	agendas  *voting.AgendaStore
	sessions *voting.Lifecycle
}

func NewAgendasController(agendas *voting.AgendaStore, sessions *voting.Lifecycle) *AgendasController {
	return &AgendasController{agendas: agendas, sessions: sessions}
}

func (c *AgendasController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/pautas")

	group.POST("", c.create)
	group.GET("", c.list)
	group.GET("/:id", c.get)
	group.POST("/:id/sessoes", c.openSession)
}

// create godoc
// @Summary Create an agenda item
// @Tags pautas
// @Accept json
// @Produce json
// @Param agenda body models.AgendaCreateRequest true "Agenda item"
// @Success 201 {object} models.AgendaResponse
// @Failure 400 {object} models.ErrorResponse "Title or description missing or too long"
// @Failure 503 {object} models.ErrorResponse
// @Router /pautas [post]
func (c *AgendasController) create(g *gin.Context) {
	var req models.AgendaCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "", "invalid request format")
		return
	}

	item, err := c.agendas.Create(g.Request.Context(), req.Title, req.Description)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusCreated, models.TransformAgendaFromStorage(item))
}

// list godoc
// @Summary List agenda items
// @Description Newest first
// @Tags pautas
// @Produce json
// @Param page query int false "Page number, zero based"
// @Param size query int false "Page size"
// @Success 200 {object} models.PageResponse[models.AgendaResponse]
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /pautas [get]
func (c *AgendasController) list(g *gin.Context) {
	page, size, ok := pageParams(g)
	if !ok {
		return
	}
	p, err := c.agendas.List(g.Request.Context(), page, size)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformPage(p, models.TransformAgendaFromStorage))
}

// get godoc
// @Summary Get an agenda item
// @Tags pautas
// @Produce json
// @Param id path int true "Agenda item ID"
// @Success 200 {object} models.AgendaResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /pautas/{id} [get]
func (c *AgendasController) get(g *gin.Context) {
	id, ok := pathID(g)
	if !ok {
		return
	}
	item, err := c.agendas.Get(g.Request.Context(), id)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformAgendaFromStorage(item))
}

// openSession godoc
// @Summary Open a voting session
// @Description Opens a session lasting duracaoMinutos (1 to 60, default 1 when omitted). Only one session per agenda item can be active
// @Tags pautas
// @Accept json
// @Produce json
// @Param id path int true "Agenda item ID"
// @Param session body models.SessionOpenRequest false "Duration"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "A session is already active"
// @Failure 503 {object} models.ErrorResponse
// @Router /pautas/{id}/sessoes [post]
func (c *AgendasController) openSession(g *gin.Context) {
	id, ok := pathID(g)
	if !ok {
		return
	}
	var req models.SessionOpenRequest
	// An empty body opens a session with the default duration.
	if err := g.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(g, "", "invalid request format")
		return
	}
	minutes := voting.MinDurationMinutes
	if req.DurationMinutes != nil {
		minutes = *req.DurationMinutes
	}

	state, err := c.sessions.Open(g.Request.Context(), id, minutes)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusCreated, models.TransformSessionState(state))
}
