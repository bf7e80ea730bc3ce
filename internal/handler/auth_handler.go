package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sshperkin/travel-agency/internal/service"
	"github.com/sshperkin/travel-agency/pkg/logger"
	"github.com/sshperkin/travel-agency/prometheus"
)

// AuthHandler exposes login and user account endpoints
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates a username/password pair and returns a session
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	session, err := h.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		// The username never reaches the reply; failed logins all look alike
		log.Warn("Login failed", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_credentials")
		return respondError(c, log, err)
	}

	prometheus.ActiveSessionsGauge.Inc()
	log.Info("User logged in",
		zap.String("username", session.Username),
		zap.String("role", session.Role))

	return c.JSON(http.StatusOK, session)
}

// Register creates a new user account (admin only)
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)

	var req service.RegisterUserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.auth.Register(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("User registered",
		zap.String("username", user.Username),
		zap.String("role", user.Role))

	return c.JSON(http.StatusCreated, user)
}

// ChangePassword replaces the current user's password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse change-password request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.auth.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Password changed", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// Me returns the identity carried by the current session
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  c.Get("user_id"),
		"username": c.Get("username"),
		"role":     c.Get("role"),
	})
}
