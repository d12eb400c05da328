package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	*BaseHandler
	authUseCase domain.AuthUseCase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUseCase domain.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authUseCase: authUseCase,
	}
}

// PostLogin authenticates a user by email or username.
func (h *AuthHandler) PostLogin(c echo.Context) error {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "login")
	logEntry.Info("Logging in")

	user, token, err := h.authUseCase.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		logEntry.WithError(err).Warn("Login failed")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":  toAPIUser(user),
		"token": token,
	})
}
