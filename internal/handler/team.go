package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// TeamHandler handles team and join-request endpoints.
type TeamHandler struct {
	*BaseHandler
	teamUseCase domain.TeamUseCase
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamUseCase domain.TeamUseCase, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		BaseHandler: NewBaseHandler(logger),
		teamUseCase: teamUseCase,
	}
}

// PostTeam creates a team led by the authenticated user.
func (h *TeamHandler) PostTeam(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	var req struct {
		Name         string  `json:"name"`
		TournamentID *string `json:"tournamentId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "create_team").WithFields(logrus.Fields{
		"user_id":   user.ID,
		"team_name": req.Name,
	})
	logEntry.Info("Creating team")

	team, err := h.teamUseCase.CreateTeam(c.Request().Context(), req.Name, req.TournamentID, user.ID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to create team")
		return respondError(c, err)
	}

	logEntry.WithField("team_id", team.ID).Info("Team created")
	return c.JSON(http.StatusCreated, toAPITeam(team))
}

// GetTeam returns a team with its members.
func (h *TeamHandler) GetTeam(c echo.Context) error {
	team, err := h.teamUseCase.GetTeam(c.Request().Context(), c.Param("teamId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAPITeam(team))
}

// PostJoinRequest files a join request for the authenticated user.
func (h *TeamHandler) PostJoinRequest(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	var req struct {
		UserType domain.UserType `json:"userType"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	teamID := c.Param("teamId")
	logEntry := h.logRequest(c, "ask_join_team").WithFields(logrus.Fields{
		"user_id":   user.ID,
		"team_id":   teamID,
		"user_type": req.UserType,
	})
	logEntry.Info("Filing join request")

	updated, err := h.teamUseCase.AskJoinTeam(c.Request().Context(), teamID, user.ID, req.UserType)
	if err != nil {
		logEntry.WithError(err).Warn("Join request refused")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(updated))
}

// DeleteJoinRequest withdraws the authenticated user's pending request.
func (h *TeamHandler) DeleteJoinRequest(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	logEntry := h.logRequest(c, "delete_join_request").WithField("user_id", user.ID)
	logEntry.Info("Withdrawing join request")

	if err := h.teamUseCase.DeleteTeamRequest(c.Request().Context(), user.ID); err != nil {
		logEntry.WithError(err).Error("Failed to withdraw join request")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}

// PostAcceptJoinRequest lets the team captain accept a pending request.
func (h *TeamHandler) PostAcceptJoinRequest(c echo.Context) error {
	captain, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	userID := c.Param("userId")
	logEntry := h.logRequest(c, "accept_join_request").WithFields(logrus.Fields{
		"captain_id": captain.ID,
		"user_id":    userID,
	})
	logEntry.Info("Accepting join request")

	member, err := h.teamUseCase.AcceptJoinRequest(c.Request().Context(), captain.ID, userID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to accept join request")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toAPIUser(member))
}

// DeleteRejectJoinRequest lets the team captain reject a pending request.
func (h *TeamHandler) DeleteRejectJoinRequest(c echo.Context) error {
	captain, err := currentUser(c)
	if err != nil {
		return unauthenticated(c)
	}

	userID := c.Param("userId")
	logEntry := h.logRequest(c, "reject_join_request").WithFields(logrus.Fields{
		"captain_id": captain.ID,
		"user_id":    userID,
	})
	logEntry.Info("Rejecting join request")

	if err := h.teamUseCase.RejectJoinRequest(c.Request().Context(), captain.ID, userID); err != nil {
		logEntry.WithError(err).Warn("Failed to reject join request")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}
