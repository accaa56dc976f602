package controller

import (
	"net/http"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type freelancerRoutesHandler struct {
	freelancerService service.Freelancer
	validate          *validator.Validate
	logger            *logger.Logger
}

func newFreelancerRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, l *logger.Logger) *freelancerRoutesHandler {
	h := &freelancerRoutesHandler{freelancerService: services.Freelancer, validate: v, logger: l}

	outer.GET("/freelancers/search", h.SearchFreelancers)
	outer.POST("/freelancers", h.PostFreelancer)
	outer.GET("/freelancers/user/:userId", h.GetFreelancerByUser)
	outer.GET("/freelancers/:freelancerId", h.GetFreelancer)
	outer.PUT("/freelancers/:freelancerId", h.PutFreelancer)
	outer.POST("/freelancers/:freelancerId/portfolio", h.PostPortfolioItem)
	outer.GET("/freelancers/:freelancerId/portfolio", h.GetPortfolio)

	return h
}

type searchFreelancersInput struct {
	Skill         string `query:"skill" validate:"max=100"`
	Country       string `query:"country" validate:"max=100"`
	MaxHourlyRate string `query:"maxHourlyRate" validate:"omitempty,numeric"`
}

// /freelancers/search
func (h *freelancerRoutesHandler) SearchFreelancers(c echo.Context) error {
	var input searchFreelancersInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	filter := &entity.SearchFreelancersInput{Skill: input.Skill, Country: input.Country}
	if input.MaxHourlyRate != "" {
		rate, err := decimal.NewFromString(input.MaxHourlyRate)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'MaxHourlyRate': should be a number"}); e != nil {
				return e
			}

			return nil
		}
		filter.MaxHourlyRate = &rate
	}

	freelancers, err := h.freelancerService.SearchFreelancers(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, freelancers); e != nil {
		return e
	}

	return nil
}

type postFreelancerInput struct {
	UserId          string           `json:"userId" validate:"required,uuid"`
	FullName        string           `json:"fullName" validate:"required,max=200"`
	Title           string           `json:"title" validate:"required,max=200"`
	Description     string           `json:"description" validate:"max=5000"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate" validate:"required"`
	Skills          []string         `json:"skills" validate:"max=50,dive,required,max=100"`
	Country         string           `json:"country" validate:"required,max=100"`
	ProfileImageUrl string           `json:"profileImageUrl" validate:"omitempty,url,max=500"`
}

// /freelancers
func (h *freelancerRoutesHandler) PostFreelancer(c echo.Context) error {
	var input postFreelancerInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateFreelancerInput{
		UserId: input.UserId, FullName: input.FullName, Title: input.Title,
		Description: input.Description, HourlyRate: *input.HourlyRate, Skills: input.Skills,
		Country: input.Country, ProfileImageUrl: input.ProfileImageUrl,
	}

	freelancer, err := h.freelancerService.CreateFreelancer(c.Request().Context(), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusCreated, freelancer); e != nil {
		return e
	}

	return nil
}

func (h *freelancerRoutesHandler) respondFreelancer(c echo.Context, freelancer *entity.FreelancerOutputModel, err error) error {
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, freelancer); e != nil {
		return e
	}

	return nil
}

// /freelancers/:freelancerId
func (h *freelancerRoutesHandler) GetFreelancer(c echo.Context) error {
	freelancer, err := h.freelancerService.GetFreelancer(c.Request().Context(), c.Param("freelancerId"))
	return h.respondFreelancer(c, freelancer, err)
}

// /freelancers/user/:userId
func (h *freelancerRoutesHandler) GetFreelancerByUser(c echo.Context) error {
	freelancer, err := h.freelancerService.GetFreelancerByUser(c.Request().Context(), c.Param("userId"))
	return h.respondFreelancer(c, freelancer, err)
}

type putFreelancerInput struct {
	FullName        string           `json:"fullName" validate:"max=200"`
	Title           string           `json:"title" validate:"max=200"`
	Description     string           `json:"description" validate:"max=5000"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate"`
	Skills          []string         `json:"skills" validate:"max=50,dive,required,max=100"`
	Country         string           `json:"country" validate:"max=100"`
	ProfileImageUrl string           `json:"profileImageUrl" validate:"omitempty,url,max=500"`
}

// /freelancers/:freelancerId
func (h *freelancerRoutesHandler) PutFreelancer(c echo.Context) error {
	var input putFreelancerInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.UpdateFreelancerInput{
		FullName: input.FullName, Title: input.Title, Description: input.Description,
		HourlyRate: input.HourlyRate, Skills: input.Skills, Country: input.Country,
		ProfileImageUrl: input.ProfileImageUrl,
	}

	freelancer, err := h.freelancerService.UpdateFreelancer(c.Request().Context(), c.Param("freelancerId"), model)
	return h.respondFreelancer(c, freelancer, err)
}

type postPortfolioItemInput struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=5000"`
	Technologies []string `json:"technologies" validate:"max=50,dive,required,max=100"`
	ProjectUrl   string   `json:"projectUrl" validate:"omitempty,url,max=500"`
	ImageUrl     string   `json:"imageUrl" validate:"omitempty,url,max=500"`
}

type portfolioItemResponse struct {
	Message string                           `json:"message"`
	Item    *entity.PortfolioItemOutputModel `json:"item"`
}

// /freelancers/:freelancerId/portfolio
func (h *freelancerRoutesHandler) PostPortfolioItem(c echo.Context) error {
	var input postPortfolioItemInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreatePortfolioItemInput{
		Title: input.Title, Description: input.Description, Technologies: input.Technologies,
		ProjectUrl: input.ProjectUrl, ImageUrl: input.ImageUrl,
	}

	item, err := h.freelancerService.AddPortfolioItem(c.Request().Context(), c.Param("freelancerId"), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusCreated, portfolioItemResponse{"Portfolio item added successfully", item}); e != nil {
		return e
	}

	return nil
}

// /freelancers/:freelancerId/portfolio
func (h *freelancerRoutesHandler) GetPortfolio(c echo.Context) error {
	items, err := h.freelancerService.ListPortfolio(c.Request().Context(), c.Param("freelancerId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, items); e != nil {
		return e
	}

	return nil
}
