package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// APIHandler aggregates all endpoint handlers.
type APIHandler struct {
	*AuthHandler
	*UserHandler
	*TeamHandler
	*ItemHandler
	*CartHandler
}

// NewAPIHandler creates the aggregated handler.
func NewAPIHandler(
	authUseCase domain.AuthUseCase,
	userUseCase domain.UserUseCase,
	teamUseCase domain.TeamUseCase,
	itemUseCase domain.ItemUseCase,
	cartUseCase domain.CartUseCase,
	logger *logrus.Logger,
) *APIHandler {
	return &APIHandler{
		AuthHandler: NewAuthHandler(authUseCase, logger),
		UserHandler: NewUserHandler(userUseCase, logger),
		TeamHandler: NewTeamHandler(teamUseCase, logger),
		ItemHandler: NewItemHandler(itemUseCase, teamUseCase, logger),
		CartHandler: NewCartHandler(cartUseCase, logger),
	}
}

// RegisterRoutes wires every endpoint on the Echo instance. Routes under the
// auth group require a valid bearer token.
func (h *APIHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo domain.UserRepository) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/login", h.PostLogin)
	e.POST("/users", h.PostUser)
	e.POST("/users/confirm/:token", h.PostConfirmEmail)

	authed := e.Group("", AuthMiddleware(cfg, userRepo))
	authed.GET("/users/current", h.GetCurrentUser)
	authed.POST("/teams", h.PostTeam)
	authed.GET("/teams/:teamId", h.GetTeam)
	authed.POST("/teams/:teamId/join-requests", h.PostJoinRequest)
	authed.DELETE("/teams/current/join-requests", h.DeleteJoinRequest)
	authed.POST("/teams/current/join-requests/:userId", h.PostAcceptJoinRequest)
	authed.DELETE("/teams/current/join-requests/:userId", h.DeleteRejectJoinRequest)
	authed.GET("/items", h.GetItems)
	authed.POST("/carts", h.PostCart)
	authed.GET("/carts", h.GetCarts)
}
