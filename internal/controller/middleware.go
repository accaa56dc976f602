package controller

import (
	"time"

	"job-marketplace-api/pkg/logger"

	"github.com/labstack/echo"
)

func requestLogger(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			l.Info("request",
				"method", req.Method,
				"uri", req.RequestURI,
				"status", c.Response().Status,
				"latency", time.Since(start).String(),
				"remote_ip", c.RealIP(),
			)

			return nil
		}
	}
}
