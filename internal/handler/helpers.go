package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// API models. Users are always filtered before leaving the API: no password,
// no register token, no timestamps.

type apiUser struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Type         domain.UserType `json:"type"`
	DiscordID    *string         `json:"discordId,omitempty"`
	TeamID       *string         `json:"teamId,omitempty"`
	AskingTeamID *string         `json:"askingTeamId,omitempty"`
}

type apiTeam struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TournamentID *string   `json:"tournamentId,omitempty"`
	CaptainID    string    `json:"captainId"`
	Locked       bool      `json:"locked"`
	Players      []apiUser `json:"players"`
}

type apiItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Attribute *string `json:"attribute,omitempty"`
	Price     int     `json:"price"`
	Infos     *string `json:"infos,omitempty"`
	Image     *string `json:"image,omitempty"`
	Left      *int    `json:"left,omitempty"`
}

type apiCartItem struct {
	ID       string `json:"id"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type apiCart struct {
	ID               string                  `json:"id"`
	TransactionState domain.TransactionState `json:"transactionState"`
	Items            []apiCartItem           `json:"items"`
}

func toAPIUser(user *domain.User) apiUser {
	return apiUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Type:         user.Type,
		DiscordID:    user.DiscordID,
		TeamID:       user.TeamID,
		AskingTeamID: user.AskingTeamID,
	}
}

func toAPITeam(team *domain.Team) apiTeam {
	players := make([]apiUser, len(team.Players))
	for i, player := range team.Players {
		players[i] = toAPIUser(player)
	}
	return apiTeam{
		ID:           team.ID,
		Name:         team.Name,
		TournamentID: team.TournamentID,
		CaptainID:    team.CaptainID,
		Locked:       team.Locked,
		Players:      players,
	}
}

func toAPIItems(items []*domain.Item) []apiItem {
	result := make([]apiItem, len(items))
	for i, item := range items {
		result[i] = apiItem{
			ID:        item.ID,
			Name:      item.Name,
			Category:  item.Category,
			Attribute: item.Attribute,
			Price:     item.Price,
			Infos:     item.Infos,
			Image:     item.Image,
			Left:      item.Left,
		}
	}
	return result
}

func toAPICart(cart *domain.Cart) apiCart {
	items := make([]apiCartItem, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = apiCartItem{
			ID:       line.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
	}
	return apiCart{
		ID:               cart.ID,
		TransactionState: cart.TransactionState,
		Items:            items,
	}
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{Code: code, Message: message},
	}
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Validation errors (400)
	case domain.ErrInvalidUserType, domain.ErrInvalidLogin,
		domain.ErrInvalidUsername, domain.ErrInvalidEmail,
		domain.ErrInvalidPassword, domain.ErrInvalidTeamName,
		domain.ErrEmptyCart, domain.ErrInvalidQuantity:
		return http.StatusBadRequest

	// Authentication errors (401)
	case domain.ErrUnauthenticated, domain.ErrInvalidCredentials:
		return http.StatusUnauthorized

	// Authorization / state-conflict errors (403)
	case domain.ErrAlreadyInTeam, domain.ErrAlreadyAskedATeam,
		domain.ErrTeamMaxCoachReached, domain.ErrNoSpectator,
		domain.ErrTeamLocked, domain.ErrNoDiscordAccountLinked,
		domain.ErrEmailNotConfirmed, domain.ErrLoginAsAttendant,
		domain.ErrNotCaptain:
		return http.StatusForbidden

	// Not found errors (404)
	case domain.ErrUserNotFound, domain.ErrTeamNotFound,
		domain.ErrItemNotFound, domain.ErrJoinRequestNotFound:
		return http.StatusNotFound

	// Conflict errors (409)
	case domain.ErrUsernameAlreadyUsed, domain.ErrEmailAlreadyUsed,
		domain.ErrTeamNameAlreadyUsed:
		return http.StatusConflict

	// Gone errors (410)
	case domain.ErrItemOutOfStock:
		return http.StatusGone

	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a domain error to its HTTP response. Unexpected errors
// answer with a generic marker only; the detail stays in the logs.
func respondError(c echo.Context, err error) error {
	if httpErr, exists := domain.ToHTTPError(err); exists {
		return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
	}
	return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", "an unexpected error occurred"))
}

var errNoContextUser = errors.New("no authenticated user in context")

const contextUserKey = "user"

// currentUser returns the authenticated user stored by the auth middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	if !ok {
		return nil, errNoContextUser
	}
	return user, nil
}
