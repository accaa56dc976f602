package controller

import (
	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func newRouter(handler *echo.Echo, l *logger.Logger) (*echo.Group, *validator.Validate) {
	handler.HideBanner = true
	handler.Use(middleware.Recover())
	handler.Use(requestLogger(l))

	return handler.Group("/api"), validator.New(validator.WithRequiredStructEnabled())
}

func SetupJobPortalRoutes(handler *echo.Echo, services *service.Services, l *logger.Logger) {
	api, validate := newRouter(handler, l)
	newDiagnosticRoutesHandler(api, services, l)
	newCompanyRoutesHandler(api, services, validate, l)
	newJobRoutesHandler(api, services, validate, l)
}

func SetupMarketplaceRoutes(handler *echo.Echo, services *service.Services, l *logger.Logger) {
	api, validate := newRouter(handler, l)
	newDiagnosticRoutesHandler(api, services, l)
	newProjectRoutesHandler(api, services, validate, l)
	newFreelancerRoutesHandler(api, services, validate, l)
	newClientRoutesHandler(api, services, validate, l)
}
