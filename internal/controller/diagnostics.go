package controller

import (
	"net/http"

	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/logger"

	"github.com/labstack/echo"
)

type diagnosticRoutesHandler struct {
	diagnosticService service.Diagnostics
	logger            *logger.Logger
}

func newDiagnosticRoutesHandler(outer *echo.Group, services *service.Services, l *logger.Logger) *diagnosticRoutesHandler {
	h := &diagnosticRoutesHandler{services.Diagnostics, l}
	outer.GET("/ping", h.Ping)

	return h
}

func (h *diagnosticRoutesHandler) Ping(c echo.Context) error {
	err := h.diagnosticService.Ping(c.Request().Context())
	if err != nil {
		h.logger.Error("ping failed", "error", err)
		if e := c.NoContent(http.StatusInternalServerError); e != nil {
			return e
		}

		return nil
	}
	if e := c.JSON(http.StatusOK, "ok"); e != nil {
		return e
	}

	return nil
}
