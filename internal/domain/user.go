package domain

import "context"

// UserType is the role a user registered with.
type UserType string

const (
	UserPlayer    UserType = "player"
	UserCoach     UserType = "coach"
	UserSpectator UserType = "spectator"
	UserAttendant UserType = "attendant"
	UserOrga      UserType = "orga"
)

// User is an account on the platform. TeamID and AskingTeamID are mutually
// exclusive: a user either belongs to a team or has a pending join request,
// never both.
type User struct {
	ID            string
	Username      string
	Email         string
	Password      string
	Type          UserType
	RegisterToken *string
	DiscordID     *string
	TeamID        *string
	AskingTeamID  *string
}

// HasTeam reports whether the user is a confirmed member of a team.
func (u *User) HasTeam() bool {
	return u.TeamID != nil
}

// HasPendingRequest reports whether the user has asked to join a team.
func (u *User) HasPendingRequest() bool {
	return u.AskingTeamID != nil
}

// UserRepository defines the contract for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByRegisterToken(ctx context.Context, token string) (*User, error)
	// SetJoinRequest records a pending join request and the requested role in
	// a single write.
	SetJoinRequest(ctx context.Context, userID, teamID string, userType UserType) (*User, error)
	// ClearJoinRequest removes any pending join request. It succeeds when
	// there is none.
	ClearJoinRequest(ctx context.Context, userID string) (*User, error)
	// JoinTeam sets the team and clears the pending request in a single write.
	JoinTeam(ctx context.Context, userID, teamID string) (*User, error)
	ClearRegisterToken(ctx context.Context, userID string) (*User, error)
	Delete(ctx context.Context, userID string) error
}
