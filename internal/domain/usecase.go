package domain

import "context"

// TeamUseCase defines the membership state machine operations.
type TeamUseCase interface {
	CreateTeam(ctx context.Context, name string, tournamentID *string, captainID string) (*Team, error)
	GetTeam(ctx context.Context, teamID string) (*Team, error)
	// AskJoinTeam files a join request for the user with the requested role.
	AskJoinTeam(ctx context.Context, teamID, userID string, userType UserType) (*User, error)
	// DeleteTeamRequest clears the user's pending request. Succeeds when
	// there is none.
	DeleteTeamRequest(ctx context.Context, userID string) error
	// AcceptJoinRequest turns a pending request into a membership, after
	// re-validating the lock state and the coach limit.
	AcceptJoinRequest(ctx context.Context, captainID, userID string) (*User, error)
	// RejectJoinRequest clears a pending request to the captain's team.
	RejectJoinRequest(ctx context.Context, captainID, userID string) error
}

// ItemUseCase defines catalog reads.
type ItemUseCase interface {
	// ListItems returns the catalog with remaining stock computed, filtered
	// for the caller's team.
	ListItems(ctx context.Context, team *Team) ([]*Item, error)
}

// CartUseCase defines order operations.
type CartUseCase interface {
	// CreateCart opens a pending cart after validating stock availability.
	CreateCart(ctx context.Context, userID string, lines []*CartItem) (*Cart, error)
	// GetCarts returns all carts of a user, lines included.
	GetCarts(ctx context.Context, userID string) ([]*Cart, error)
}

// AuthUseCase defines the authentication gate.
type AuthUseCase interface {
	// Login authenticates by email or username and returns the user with a
	// signed bearer token.
	Login(ctx context.Context, login, password string) (*User, string, error)
}

// UserUseCase defines account lifecycle operations.
type UserUseCase interface {
	Register(ctx context.Context, username, email, password string, userType UserType) (*User, error)
	ConfirmEmail(ctx context.Context, token string) (*User, error)
}
