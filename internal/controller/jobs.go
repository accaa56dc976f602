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

type jobRoutesHandler struct {
	jobService service.Job
	validate   *validator.Validate
	logger     *logger.Logger
}

func newJobRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, l *logger.Logger) *jobRoutesHandler {
	h := &jobRoutesHandler{jobService: services.Job, validate: v, logger: l}

	outer.GET("/jobs", h.GetJobs)
	outer.POST("/jobs", h.PostJob)
	outer.GET("/jobs/:jobId", h.GetJob)
	outer.PUT("/jobs/:jobId", h.PutJob)
	outer.DELETE("/jobs/:jobId", h.DeleteJob)
	outer.POST("/jobs/:jobId/apply", h.ApplyForJob)
	outer.GET("/jobs/:jobId/applications", h.GetJobApplications)

	return h
}

// /jobs
func (h *jobRoutesHandler) GetJobs(c echo.Context) error {
	pg, ok, err := pagination(c, h.validate)
	if !ok {
		return err
	}

	jobs, err := h.jobService.ListJobs(c.Request().Context(), pg)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, jobs); e != nil {
		return e
	}

	return nil
}

type postJobInput struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Description string           `json:"description" validate:"required"`
	Salary      *decimal.Decimal `json:"salary"`
	Location    string           `json:"location" validate:"required,max=200"`
	JobType     string           `json:"jobType" validate:"required,oneof=Full-time Part-time Contract"`
	CompanyId   string           `json:"companyId" validate:"required,uuid"`
}

// /jobs
func (h *jobRoutesHandler) PostJob(c echo.Context) error {
	var input postJobInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateJobInput{
		Title: input.Title, Description: input.Description, Salary: input.Salary,
		Location: input.Location, JobType: input.JobType, CompanyId: input.CompanyId,
	}

	job, err := h.jobService.CreateJob(c.Request().Context(), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusCreated, job); e != nil {
		return e
	}

	return nil
}

// /jobs/:jobId
func (h *jobRoutesHandler) GetJob(c echo.Context) error {
	job, err := h.jobService.GetJob(c.Request().Context(), c.Param("jobId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, job); e != nil {
		return e
	}

	return nil
}

type putJobInput struct {
	Title       string           `json:"title" validate:"max=200"`
	Description string           `json:"description"`
	Salary      *decimal.Decimal `json:"salary"`
	Location    string           `json:"location" validate:"max=200"`
	JobType     string           `json:"jobType" validate:"omitempty,oneof=Full-time Part-time Contract"`
	Status      string           `json:"status" validate:"omitempty,oneof=Active Deleted"`
}

// /jobs/:jobId
func (h *jobRoutesHandler) PutJob(c echo.Context) error {
	var input putJobInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.UpdateJobInput{
		Title: input.Title, Description: input.Description, Salary: input.Salary,
		Location: input.Location, JobType: input.JobType, Status: input.Status,
	}

	job, err := h.jobService.UpdateJob(c.Request().Context(), c.Param("jobId"), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, job); e != nil {
		return e
	}

	return nil
}

// /jobs/:jobId
func (h *jobRoutesHandler) DeleteJob(c echo.Context) error {
	if err := h.jobService.DeleteJob(c.Request().Context(), c.Param("jobId")); err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type applyForJobInput struct {
	ApplicantId string `json:"applicantId" validate:"required,uuid"`
	CoverLetter string `json:"coverLetter" validate:"max=5000"`
	ResumeUrl   string `json:"resumeUrl" validate:"required,max=500"`
}

type applyForJobResponse struct {
	Message       string `json:"message"`
	ApplicationId string `json:"applicationId"`
}

// /jobs/:jobId/apply
func (h *jobRoutesHandler) ApplyForJob(c echo.Context) error {
	var input applyForJobInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateApplicationInput{
		ApplicantId: input.ApplicantId, CoverLetter: input.CoverLetter, ResumeUrl: input.ResumeUrl,
	}

	application, err := h.jobService.ApplyForJob(c.Request().Context(), c.Param("jobId"), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, applyForJobResponse{"Application submitted successfully", application.Id}); e != nil {
		return e
	}

	return nil
}

// /jobs/:jobId/applications
func (h *jobRoutesHandler) GetJobApplications(c echo.Context) error {
	applications, err := h.jobService.ListApplications(c.Request().Context(), c.Param("jobId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, applications); e != nil {
		return e
	}

	return nil
}
