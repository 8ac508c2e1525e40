package controllers

import (
	"net/http"

	"github.com/alex-pricope/coop-voting-system/api/models"
	"github.com/alex-pricope/coop-voting-system/storage"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/gin-gonic/gin"
)

type MembersController struct {
	members *voting.Registry
}

func NewMembersController(members *voting.Registry) *MembersController {
	return &MembersController{members: members}
}

func (c *MembersController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/associados")

	group.POST("", c.register)
	group.GET("", c.list)
	group.GET("/busca", c.search)
	group.GET("/:id", c.get)
	group.PATCH("/:id", c.setActive)
}

// register godoc
// @Summary Register a member
// @Description Registers a cooperative member. The cpf must have exactly 11 digits and be unique
// @Tags associados
// @Accept json
// @Produce json
// @Param member body models.MemberCreateRequest true "Member"
// @Success 201 {object} models.MemberResponse
// @Failure 400 {object} models.ErrorResponse "Invalid cpf or name"
// @Failure 409 {object} models.ErrorResponse "Cpf already registered"
// @Failure 503 {object} models.ErrorResponse
// @Router /associados [post]
func (c *MembersController) register(g *gin.Context) {
	var req models.MemberCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "", "invalid request format")
		return
	}

	member, err := c.members.Register(g.Request.Context(), req.CPF, req.Name)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusCreated, models.TransformMemberFromStorage(member))
}

// list godoc
// @Summary List members
// @Tags associados
// @Produce json
// @Param page query int false "Page number, zero based"
// @Param size query int false "Page size"
// @Success 200 {object} models.PageResponse[models.MemberResponse]
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /associados [get]
func (c *MembersController) list(g *gin.Context) {
	page, size, ok := pageParams(g)
	if !ok {
		return
	}
	p, err := c.members.List(g.Request.Context(), page, size)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformPage(p, models.TransformMemberFromStorage))
}

// search godoc
// @Summary Search members
// @Description Matches nome by case-insensitive substring or cpf by prefix. nome wins when both are given; neither lists every member
// @Tags associados
// @Produce json
// @Param nome query string false "Name fragment"
// @Param cpf query string false "Cpf prefix"
// @Param page query int false "Page number, zero based"
// @Param size query int false "Page size"
// @Success 200 {object} models.PageResponse[models.MemberResponse]
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /associados/busca [get]
func (c *MembersController) search(g *gin.Context) {
	page, size, ok := pageParams(g)
	if !ok {
		return
	}

	var (
		p   voting.Page[*storage.Member]
		err error
	)
	ctx := g.Request.Context()
	if name, ok := g.GetQuery("nome"); ok && name != "" {
		p, err = c.members.Search(ctx, name, voting.SearchByName, page, size)
	} else if cpf, ok := g.GetQuery("cpf"); ok && cpf != "" {
		p, err = c.members.Search(ctx, cpf, voting.SearchByCPF, page, size)
	} else {
		p, err = c.members.List(ctx, page, size)
	}
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformPage(p, models.TransformMemberFromStorage))
}

// get godoc
// @Summary Get a member
// @Tags associados
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} models.MemberResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /associados/{id} [get]
func (c *MembersController) get(g *gin.Context) {
	member, err := c.members.Lookup(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformMemberFromStorage(member))
}

// setActive godoc
// @Summary Activate or deactivate a member
// @Description Inactive members cannot vote
// @Tags associados
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param update body models.MemberUpdateRequest true "Eligibility"
// @Success 200 {object} models.MemberResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /associados/{id} [patch]
func (c *MembersController) setActive(g *gin.Context) {
	var req models.MemberUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		badRequest(g, "", "invalid request format")
		return
	}
	if req.Active == nil {
		badRequest(g, "ativo", "ativo is required")
		return
	}

	member, err := c.members.SetActive(g.Request.Context(), g.Param("id"), *req.Active)
	if err != nil {
		respondError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformMemberFromStorage(member))
}
