package controller

import (
	"net/http"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type projectRoutesHandler struct {
	projectService service.Project
	validate       *validator.Validate
	logger         *logger.Logger
}

func newProjectRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, l *logger.Logger) *projectRoutesHandler {
	h := &projectRoutesHandler{projectService: services.Project, validate: v, logger: l}

	outer.GET("/projects", h.GetOpenProjects)
	outer.POST("/projects", h.PostProject)
	outer.GET("/projects/client/:clientId", h.GetClientProjects)
	outer.GET("/projects/status/:status", h.GetProjectsByStatus)
	outer.POST("/projects/bids/:bidId/accept", h.AcceptBid)
	outer.GET("/projects/:projectId", h.GetProject)
	outer.PUT("/projects/:projectId", h.PutProject)
	outer.DELETE("/projects/:projectId", h.CloseProject)
	outer.POST("/projects/:projectId/bids", h.SubmitBid)
	outer.GET("/projects/:projectId/bids", h.GetProjectBids)

	return h
}

func (h *projectRoutesHandler) respondProjects(c echo.Context, projects []entity.ProjectOutputModel, err error) error {
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, projects); e != nil {
		return e
	}

	return nil
}

// /projects
func (h *projectRoutesHandler) GetOpenProjects(c echo.Context) error {
	pg, ok, err := pagination(c, h.validate)
	if !ok {
		return err
	}

	projects, err := h.projectService.ListOpenProjects(c.Request().Context(), pg)
	return h.respondProjects(c, projects, err)
}

// /projects/client/:clientId
func (h *projectRoutesHandler) GetClientProjects(c echo.Context) error {
	pg, ok, err := pagination(c, h.validate)
	if !ok {
		return err
	}

	projects, err := h.projectService.ListClientProjects(c.Request().Context(), c.Param("clientId"), pg)
	return h.respondProjects(c, projects, err)
}

// /projects/status/:status
func (h *projectRoutesHandler) GetProjectsByStatus(c echo.Context) error {
	pg, ok, err := pagination(c, h.validate)
	if !ok {
		return err
	}

	projects, err := h.projectService.ListProjectsByStatus(c.Request().Context(), c.Param("status"), pg)
	return h.respondProjects(c, projects, err)
}

type postProjectInput struct {
	Title          string           `json:"title" validate:"required,max=200"`
	Description    string           `json:"description" validate:"required"`
	Budget         *decimal.Decimal `json:"budget" validate:"required"`
	Currency       string           `json:"currency" validate:"omitempty,len=3"`
	SkillLevel     string           `json:"skillLevel" validate:"required,oneof=Beginner Intermediate Expert"`
	RequiredSkills []string         `json:"requiredSkills" validate:"max=50,dive,required,max=100"`
	Deadline       *time.Time       `json:"deadline" validate:"required"`
	ClientId       string           `json:"clientId" validate:"required,uuid"`
}

// /projects
func (h *projectRoutesHandler) PostProject(c echo.Context) error {
	var input postProjectInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateProjectInput{
		Title: input.Title, Description: input.Description, Budget: *input.Budget,
		Currency: input.Currency, SkillLevel: input.SkillLevel, RequiredSkills: input.RequiredSkills,
		Deadline: *input.Deadline, ClientId: input.ClientId,
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusCreated, project); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId
func (h *projectRoutesHandler) GetProject(c echo.Context) error {
	project, err := h.projectService.GetProject(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, project); e != nil {
		return e
	}

	return nil
}

type putProjectInput struct {
	Title          string           `json:"title" validate:"max=200"`
	Description    string           `json:"description"`
	Budget         *decimal.Decimal `json:"budget"`
	SkillLevel     string           `json:"skillLevel" validate:"omitempty,oneof=Beginner Intermediate Expert"`
	RequiredSkills []string         `json:"requiredSkills" validate:"max=50,dive,required,max=100"`
	Deadline       *time.Time       `json:"deadline"`
	Status         string           `json:"status"`
}

// /projects/:projectId
func (h *projectRoutesHandler) PutProject(c echo.Context) error {
	var input putProjectInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.UpdateProjectInput{
		Title: input.Title, Description: input.Description, Budget: input.Budget,
		SkillLevel: input.SkillLevel, RequiredSkills: input.RequiredSkills,
		Deadline: input.Deadline, Status: input.Status,
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), c.Param("projectId"), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, project); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId
func (h *projectRoutesHandler) CloseProject(c echo.Context) error {
	if err := h.projectService.CloseProject(c.Request().Context(), c.Param("projectId")); err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type submitBidInput struct {
	FreelancerId string           `json:"freelancerId" validate:"required,uuid"`
	Amount       *decimal.Decimal `json:"amount" validate:"required"`
	Proposal     string           `json:"proposal" validate:"required,max=5000"`
	DeliveryDays int              `json:"deliveryDays" validate:"required"`
}

type bidResponse struct {
	Message string                 `json:"message"`
	Bid     *entity.BidOutputModel `json:"bid"`
}

// /projects/:projectId/bids
func (h *projectRoutesHandler) SubmitBid(c echo.Context) error {
	var input submitBidInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateBidInput{
		FreelancerId: input.FreelancerId, Amount: *input.Amount,
		Proposal: input.Proposal, DeliveryDays: input.DeliveryDays,
	}

	bid, err := h.projectService.SubmitBid(c.Request().Context(), c.Param("projectId"), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, bidResponse{"Bid submitted successfully", bid}); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/bids
func (h *projectRoutesHandler) GetProjectBids(c echo.Context) error {
	bids, err := h.projectService.ListBids(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, bids); e != nil {
		return e
	}

	return nil
}

// /projects/bids/:bidId/accept
func (h *projectRoutesHandler) AcceptBid(c echo.Context) error {
	bid, err := h.projectService.AcceptBid(c.Request().Context(), c.Param("bidId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, bidResponse{"Bid accepted successfully", bid}); e != nil {
		return e
	}

	return nil
}
