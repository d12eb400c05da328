package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// UserHandler handles account endpoints.
type UserHandler struct {
	*BaseHandler
	userUseCase domain.UserUseCase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUseCase domain.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userUseCase: userUseCase,
	}
}

// PostUser registers a new account.
func (h *UserHandler) PostUser(c echo.Context) error {
	var req struct {
		Username string          `json:"username"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Type     domain.UserType `json:"type"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "register").WithField("username", req.Username)
	logEntry.Info("Registering user")

	user, err := h.userUseCase.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Type)
	if err != nil {
		logEntry.WithError(err).Warn("Registration failed")
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, toAPIUser(user))
}

// PostConfirmEmail validates a confirmation token from the registration
// email.
func (h *UserHandler) PostConfirmEmail(c echo.Context) error {
	logEntry := h.logRequest(c, "confirm_email")
	logEntry.Info("Confirming email")

	user, err := h.userUseCase.ConfirmEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		logEntry.WithError(err).Warn("Email confirmation failed")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(user))
}

// GetCurrentUser returns the authenticated user.
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}
	return c.JSON(http.StatusOK, toAPIUser(user))
}
