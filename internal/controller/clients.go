package controller

import (
	"net/http"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type clientRoutesHandler struct {
	clientService service.Client
	validate      *validator.Validate
	logger        *logger.Logger
}

func newClientRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, l *logger.Logger) *clientRoutesHandler {
	h := &clientRoutesHandler{clientService: services.Client, validate: v, logger: l}

	outer.POST("/clients", h.PostClient)
	outer.GET("/clients/:clientId", h.GetClient)

	return h
}

type postClientInput struct {
	UserId      string `json:"userId" validate:"required,uuid"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Website     string `json:"website" validate:"omitempty,url,max=500"`
	Email       string `json:"email" validate:"omitempty,email,max=200"`
	Phone       string `json:"phone" validate:"max=50"`
}

// /clients
func (h *clientRoutesHandler) PostClient(c echo.Context) error {
	var input postClientInput
	if ok, err := bindAndValidate(c, h.validate, &input); !ok {
		return err
	}

	model := &entity.CreateClientInput{
		UserId: input.UserId, CompanyName: input.CompanyName, Description: input.Description,
		Website: input.Website, Email: input.Email, Phone: input.Phone,
	}

	client, err := h.clientService.CreateClient(c.Request().Context(), model)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusCreated, client); e != nil {
		return e
	}

	return nil
}

// /clients/:clientId
func (h *clientRoutesHandler) GetClient(c echo.Context) error {
	client, err := h.clientService.GetClient(c.Request().Context(), c.Param("clientId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if e := c.JSON(http.StatusOK, client); e != nil {
		return e
	}

	return nil
}
