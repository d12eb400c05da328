package domain

import "errors"

// Domain errors returned by the usecases and mapped to HTTP by the handlers.
var (
	// Validation errors
	ErrInvalidUserType = errors.New("user type must be player or coach")
	ErrInvalidLogin    = errors.New("invalid login field")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidTeamName = errors.New("invalid team name")
	ErrEmptyCart       = errors.New("cart has no items")
	ErrInvalidQuantity = errors.New("invalid item quantity")

	// Authentication errors
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authorization / state-conflict errors
	ErrAlreadyInTeam          = errors.New("user already belongs to a team")
	ErrAlreadyAskedATeam      = errors.New("user already has a pending join request")
	ErrTeamMaxCoachReached    = errors.New("team coach limit reached")
	ErrNoSpectator            = errors.New("spectators cannot join a team")
	ErrTeamLocked             = errors.New("team is locked")
	ErrNoDiscordAccountLinked = errors.New("no discord account linked")
	ErrEmailNotConfirmed      = errors.New("email not confirmed")
	ErrLoginAsAttendant       = errors.New("attendants cannot log in")
	ErrNotCaptain             = errors.New("user is not the team captain")

	// Not found errors
	ErrUserNotFound        = errors.New("user not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrJoinRequestNotFound = errors.New("join request not found")

	// Conflict errors
	ErrUsernameAlreadyUsed = errors.New("username already used")
	ErrEmailAlreadyUsed    = errors.New("email already used")
	ErrTeamNameAlreadyUsed = errors.New("team name already used")

	// Gone errors
	ErrItemOutOfStock = errors.New("item out of stock")
)

// HTTPError is the error payload exposed to clients.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an HTTPError for the response body.
type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// ErrorMapping maps domain errors to stable client-facing codes.
var ErrorMapping = map[error]HTTPError{
	ErrInvalidUserType: {Code: "INVALID_USER_TYPE", Message: "user type must be player or coach"},
	ErrInvalidLogin:    {Code: "EMPTY_LOGIN", Message: "login must not be empty"},
	ErrInvalidUsername: {Code: "INVALID_USERNAME", Message: "invalid username"},
	ErrInvalidEmail:    {Code: "INVALID_EMAIL", Message: "invalid email"},
	ErrInvalidPassword: {Code: "INVALID_PASSWORD", Message: "invalid password"},
	ErrInvalidTeamName: {Code: "INVALID_TEAM_NAME", Message: "invalid team name"},
	ErrEmptyCart:       {Code: "EMPTY_CART", Message: "cart must contain at least one item"},
	ErrInvalidQuantity: {Code: "INVALID_QUANTITY", Message: "item quantity must be positive"},

	ErrUnauthenticated:    {Code: "UNAUTHENTICATED", Message: "authentication required"},
	ErrInvalidCredentials: {Code: "INVALID_CREDENTIALS", Message: "invalid credentials"},

	ErrAlreadyInTeam:          {Code: "ALREADY_IN_TEAM", Message: "user already belongs to a team"},
	ErrAlreadyAskedATeam:      {Code: "ALREADY_ASKED_A_TEAM", Message: "user already has a pending join request"},
	ErrTeamMaxCoachReached:    {Code: "TEAM_MAX_COACH_REACHED", Message: "team coach limit reached"},
	ErrNoSpectator:            {Code: "NO_SPECTATOR", Message: "spectators cannot join a team"},
	ErrTeamLocked:             {Code: "TEAM_LOCKED", Message: "team is locked"},
	ErrNoDiscordAccountLinked: {Code: "NO_DISCORD_ACCOUNT_LINKED", Message: "no discord account linked"},
	ErrEmailNotConfirmed:      {Code: "EMAIL_NOT_CONFIRMED", Message: "email not confirmed"},
	ErrLoginAsAttendant:       {Code: "LOGIN_AS_ATTENDANT", Message: "attendants cannot log in"},
	ErrNotCaptain:             {Code: "NOT_CAPTAIN", Message: "only the team captain can do that"},

	ErrUserNotFound:        {Code: "NOT_FOUND", Message: "user not found"},
	ErrTeamNotFound:        {Code: "NOT_FOUND", Message: "team not found"},
	ErrItemNotFound:        {Code: "NOT_FOUND", Message: "item not found"},
	ErrJoinRequestNotFound: {Code: "NOT_FOUND", Message: "join request not found"},

	ErrUsernameAlreadyUsed: {Code: "USERNAME_USED", Message: "username already used"},
	ErrEmailAlreadyUsed:    {Code: "EMAIL_USED", Message: "email already used"},
	ErrTeamNameAlreadyUsed: {Code: "TEAM_NAME_USED", Message: "team name already used"},

	ErrItemOutOfStock: {Code: "ITEM_OUT_OF_STOCK", Message: "item out of stock"},
}

// ToHTTPError converts a domain error to its client-facing form.
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
