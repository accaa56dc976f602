package gateway

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"job-marketplace-api/pkg/logger"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

type errorResponse struct {
	Reason string `json:"reason"`
}

type Options struct {
	// JobPortalURLs and MarketplaceURLs are comma-separated upstream lists.
	JobPortalURLs   string
	MarketplaceURLs string

	Limiter         Limiter
	RateLimit       int
	RateLimitWindow time.Duration

	Now func() time.Time
}

var (
	jobPortalPrefixes   = []string{"/api/jobs", "/api/companies"}
	marketplacePrefixes = []string{"/api/projects", "/api/freelancers", "/api/clients"}
)

type healthResponse struct {
	Status    string            `json:"status"`
	Gateway   string            `json:"gateway"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func parseTargets(raw string) ([]*middleware.ProxyTarget, error) {
	var targets []*middleware.ProxyTarget
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		u, err := url.Parse(part)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("upstream url must be absolute: " + part)
		}
		targets = append(targets, &middleware.ProxyTarget{URL: u})
	}
	if len(targets) == 0 {
		return nil, errors.New("no upstream configured")
	}

	return targets, nil
}

// New builds the gateway router: service paths are proxied round-robin to
// their upstreams, everything else is answered locally.
func New(opts Options, l *logger.Logger) (*echo.Echo, error) {
	jobPortalTargets, err := parseTargets(opts.JobPortalURLs)
	if err != nil {
		return nil, errors.New("job portal: " + err.Error())
	}
	marketplaceTargets, err := parseTargets(opts.MarketplaceURLs)
	if err != nil {
		return nil, errors.New("marketplace: " + err.Error())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	handler := echo.New()
	handler.HideBanner = true
	handler.Use(middleware.Recover())
	handler.Use(requestLogger(l))

	handler.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Gateway is running! Try /api/jobs, /api/projects or /health")
	})
	handler.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{
			Status:    "Healthy",
			Gateway:   "API Gateway",
			Timestamp: opts.Now().UTC().Format(time.RFC3339),
			Services: map[string]string{
				"jobportal":   opts.JobPortalURLs,
				"marketplace": opts.MarketplaceURLs,
			},
		})
	})

	limit := RateLimit(opts.Limiter, opts.RateLimit, opts.RateLimitWindow)
	mount(handler, jobPortalPrefixes, middleware.NewRoundRobinBalancer(jobPortalTargets), limit)
	mount(handler, marketplacePrefixes, middleware.NewRoundRobinBalancer(marketplaceTargets), limit)

	return handler, nil
}

func mount(handler *echo.Echo, prefixes []string, balancer middleware.ProxyBalancer, limit echo.MiddlewareFunc) {
	proxy := middleware.Proxy(balancer)
	for _, prefix := range prefixes {
		handler.Group(prefix, limit, proxy)
	}
}

func requestLogger(l *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l.Info("request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"latency", time.Since(start).String(),
				"remote_ip", c.RealIP(),
			)

			return nil
		}
	}
}
