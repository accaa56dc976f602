package controller

import (
	"net/http"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type companyRoutesHandler struct {
	companyService service.Company
	jobService     service.Job
	validate       *validator.Validate
	logger         *logger.Logger
}

func newCompanyRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, l *logger.Logger) *companyRoutesHandler {
	h := &companyRoutesHandler{companyService: services.Company, jobService: services.Job, validate: v, logger: l}

	outer.POST("/companies", h.PostCompany)
	outer.GET("/companies/:companyId", h.GetCompany)
	outer.GET("/companies/:companyId/jobs", h.GetCompanyJobs)

	return h
}

type postCompanyInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Website     string `json:"website" validate:"omitempty,url,max=500"`
	Email       string `json:"email" validate:"omitempty,email,max=200"`
	Phone       string `json:"phone" validate:"max=50"`
}

// /companies
func (h *companyRoutesHandler) PostCompany(c echo.Context) error {
	var input postCompanyInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateCompanyInput{
		Name: input.Name, Description: input.Description, Website: input.Website,
		Email: input.Email, Phone: input.Phone,
	}

	company, err := h.companyService.CreateCompany(c.Request().Context(), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusCreated, company); e != nil {
		return e
	}

	return nil
}

// /companies/:companyId
func (h *companyRoutesHandler) GetCompany(c echo.Context) error {
	company, err := h.companyService.GetCompany(c.Request().Context(), c.Param("companyId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, company); e != nil {
		return e
	}

	return nil
}

// /companies/:companyId/jobs
func (h *companyRoutesHandler) GetCompanyJobs(c echo.Context) error {
	pg, ok, err := pagination(c, h.validate)
	if !ok {
		return err
	}

	jobs, err := h.jobService.ListCompanyJobs(c.Request().Context(), c.Param("companyId"), pg)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, jobs); e != nil {
		return e
	}

	return nil
}
