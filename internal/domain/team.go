package domain

import "context"

// TournamentSSBU is the tournament whose participants keep the console
// discount item in their catalog.
const TournamentSSBU = "ssbu"

// Team groups players under a tournament. A locked team accepts no further
// membership changes.
type Team struct {
	ID           string
	Name         string
	TournamentID *string
	CaptainID    string
	Locked       bool
	Players      []*User
}

// IsCaptain reports whether the given user leads this team.
func (t *Team) IsCaptain(userID string) bool {
	return t.CaptainID == userID
}

// TeamRepository defines the contract for team storage.
type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, teamID string) (*Team, error)
	ExistsName(ctx context.Context, name string) (bool, error)
	// CountCoaches counts coach-type users attached to the team, confirmed
	// members and pending requesters combined, in one query.
	CountCoaches(ctx context.Context, teamID string) (int, error)
	// GetPendingRequester returns the user with a pending request to the
	// team, or ErrUserNotFound.
	GetPendingRequester(ctx context.Context, teamID, userID string) (*User, error)
	Delete(ctx context.Context, teamID string) error
}
