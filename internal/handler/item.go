package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// ItemHandler handles the catalog endpoint.
type ItemHandler struct {
	*BaseHandler
	itemUseCase domain.ItemUseCase
	teamUseCase domain.TeamUseCase
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemUseCase domain.ItemUseCase, teamUseCase domain.TeamUseCase, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{
		BaseHandler: NewBaseHandler(logger),
		itemUseCase: itemUseCase,
		teamUseCase: teamUseCase,
	}
}

// GetItems returns the catalog with remaining stock, filtered for the
// caller's team.
func (h *ItemHandler) GetItems(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	logEntry := h.logRequest(c, "list_items").WithField("user_id", user.ID)

	var team *domain.Team
	if user.HasTeam() {
		team, err = h.teamUseCase.GetTeam(c.Request().Context(), *user.TeamID)
		if err != nil {
			logEntry.WithError(err).Error("Failed to load caller team")
			return respondError(c, err)
		}
	}

	items, err := h.itemUseCase.ListItems(c.Request().Context(), team)
	if err != nil {
		logEntry.WithError(err).Error("Failed to list items")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIItems(items))
}
