// Package http provides the FishFarmer HTTP API and serves the front-end.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pages served from the front-end directory. "/" serves the first one.
var pages = []string{
	"1Home.html",
	"2Chat.html",
	"3Options.html",
	"4Account.html",
	"5Saves.html",
	"6Response.html",
}

// Config holds HTTP server configuration.
type Config struct {
	Addr        string
	FrontendDir string
	// Registry receives the server metrics and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

// Services are the business operations exposed over HTTP.
type Services struct {
	Accounts    *services.AccountService
	Preferences *services.PreferenceService
	Advisor     *services.AdvisorService
}

// Server provides the HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	svc      Services
	metrics  *Metrics
	registry *prometheus.Registry
	logger   logging.Logger
	config   Config
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg Config, svc Services, logger logging.Logger) (*Server, error) {
	if svc.Accounts == nil || svc.Preferences == nil || svc.Advisor == nil {
		return nil, fmt.Errorf("services cannot be nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	metrics := NewMetrics(cfg.Registry)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		svc:      svc,
		metrics:  metrics,
		registry: cfg.Registry,
		logger:   logger.With("module", "http"),
		config:   cfg,
	}
	e.HTTPErrorHandler = s.handleError

	// Middleware. Recover sits inside logging and metrics so a panicking
	// handler is still counted as a 500.
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: common.RequestIDHeader,
	}))
	e.Use(s.requestLogger)
	e.Use(metrics.Middleware())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	s.echo.GET("/options", s.handleGetOptions)
	s.echo.POST("/options", s.handleSetOptions)
	s.echo.POST("/register", s.handleRegister)
	s.echo.POST("/login", s.handleLogin)
	s.echo.POST("/geminiCall", s.handleChat)
	s.echo.POST("/analyzeData", s.handleAnalyze)

	dir := s.config.FrontendDir
	s.echo.File("/", filepath.Join(dir, pages[0]))
	for _, p := range pages {
		s.echo.File("/"+p, filepath.Join(dir, p))
	}
	s.echo.Static("/static", dir)
	s.echo.Static("/music", filepath.Join(dir, "music"))
}

// requestLogger logs every request once it has been handled.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			// Let the error handler write the response so the status is known.
			c.Error(err)
		}

		s.logger.Info(c.Request().Context(), "http request",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
			"request_id", c.Response().Header().Get(common.RequestIDHeader),
		)
		return nil
	}
}

// handleError writes {"detail": message} for every error that reaches echo.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := any(http.StatusText(code))

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = he.Message
		if he.Internal != nil {
			s.logger.Debug(c.Request().Context(), "request failed", "status", code, "error", he.Internal.Error())
		}
	} else {
		s.logger.Error(c.Request().Context(), "unhandled error", "error", err.Error())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Detail: fmt.Sprint(msg)})
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "failed to write error response", "error", err.Error())
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenerAddr returns the bound address once Start is listening, or nil.
func (s *Server) ListenerAddr() net.Addr {
	return s.echo.ListenerAddr()
}

// Start starts the HTTP server. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting http server", "addr", s.config.Addr)
	return s.echo.Start(s.config.Addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
