package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/labstack/echo/v4"
)

// Client-facing messages.
const (
	msgRegistered      = "Welcome to " + common.ProductName + "!"
	msgPrefsSaved      = "Preferences saved!"
	msgUsernameTaken   = "Username already taken :("
	msgEmailTaken      = "Email already registered :("
	msgPasswordTooLong = "Password must be at most 72 bytes."
	msgBadCredentials  = "Invalid username/email or password."
	msgInvalidBody     = "invalid request body"
)

func unprocessable(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
}

func bindError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, msgInvalidBody).SetInternal(err)
}

func internalError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleGetOptions(c echo.Context) error {
	prefs, err := s.svc.Preferences.Get(c.Request().Context())
	if err != nil {
		s.logger.Error(c.Request().Context(), "failed to load preferences", "error", err.Error())
		return internalError(err)
	}
	return c.JSON(http.StatusOK, prefs)
}

// handleSetOptions replaces the stored preferences. Omitted fields take
// their default values.
func (s *Server) handleSetOptions(c echo.Context) error {
	prefs := models.DefaultPreferences()
	if err := c.Bind(prefs); err != nil {
		return bindError(err)
	}

	ctx := c.Request().Context()
	if err := s.svc.Preferences.Set(ctx, prefs); err != nil {
		if errors.Is(err, common.ErrInvalidPreferences) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		s.logger.Error(ctx, "failed to save preferences", "error", err.Error())
		return internalError(err)
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: msgPrefsSaved})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := req.validate(); err != nil {
		return unprocessable(err)
	}

	ctx := c.Request().Context()
	_, err := s.svc.Accounts.Register(ctx, *req.Username, *req.Email, *req.Password)
	switch {
	case err == nil:
		s.metrics.accountEvent("register", "success")
		return c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: msgRegistered})
	case errors.Is(err, common.ErrDuplicateUsername):
		s.metrics.accountEvent("register", "duplicate_username")
		return echo.NewHTTPError(http.StatusBadRequest, msgUsernameTaken)
	case errors.Is(err, common.ErrDuplicateEmail):
		s.metrics.accountEvent("register", "duplicate_email")
		return echo.NewHTTPError(http.StatusBadRequest, msgEmailTaken)
	case errors.Is(err, common.ErrPasswordTooLong):
		s.metrics.accountEvent("register", "password_too_long")
		return echo.NewHTTPError(http.StatusBadRequest, msgPasswordTooLong)
	default:
		s.metrics.accountEvent("register", "error")
		s.logger.Error(ctx, "registration failed", "error", err.Error())
		return internalError(err)
	}
}

// handleLogin answers unknown identifiers and wrong passwords with the same
// 401; only metrics and logs tell them apart.
func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := req.validate(); err != nil {
		return unprocessable(err)
	}

	ctx := c.Request().Context()
	res, err := s.svc.Accounts.Login(ctx, *req.Username, *req.Password)
	switch {
	case err == nil:
		s.metrics.accountEvent("login", "success")
		return c.JSON(http.StatusOK, LoginResponse{
			Status:   "success",
			Message:  fmt.Sprintf("Welcome back, %s!", res.Username),
			Username: res.Username,
		})
	case errors.Is(err, common.ErrAccountNotFound):
		s.metrics.accountEvent("login", "unknown_account")
		s.logger.Info(ctx, "login rejected", "reason", "unknown account")
		return echo.NewHTTPError(http.StatusUnauthorized, msgBadCredentials)
	case errors.Is(err, common.ErrIncorrectPassword):
		s.metrics.accountEvent("login", "wrong_password")
		s.logger.Info(ctx, "login rejected", "reason", "wrong password")
		return echo.NewHTTPError(http.StatusUnauthorized, msgBadCredentials)
	default:
		s.metrics.accountEvent("login", "error")
		s.logger.Error(ctx, "login failed", "error", err.Error())
		return internalError(err)
	}
}

func (s *Server) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	history, data, err := req.validate()
	if err != nil {
		return unprocessable(err)
	}
	return s.advise(c, "geminiCall", history, data)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req FarmingDataRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := req.validate(""); err != nil {
		return unprocessable(err)
	}
	return s.advise(c, "analyzeData", nil, req.model())
}

func (s *Server) advise(c echo.Context, endpoint string, history []models.ChatMessage, data *models.FarmingData) error {
	ctx := c.Request().Context()

	text, err := s.svc.Advisor.Chat(ctx, history, data)
	switch {
	case err == nil:
		s.metrics.advisorCall(endpoint, "success")
		return c.JSON(http.StatusOK, ChatResponse{Response: text})
	case errors.Is(err, common.ErrEmptyConversation):
		s.metrics.advisorCall(endpoint, "empty")
		return unprocessable(err)
	default:
		s.metrics.advisorCall(endpoint, "error")
		s.logger.Error(ctx, "advisor request failed", "endpoint", endpoint, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, AdvisorErrorResponse{Error: "Gemini request failed: " + err.Error()})
	}
}
