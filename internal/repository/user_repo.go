package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

const userColumns = "id, username, email, password, type, register_token, discord_id, team_id, asking_team_id"

// UserRepository implements user storage over PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Type,
		&u.RegisterToken, &u.DiscordID, &u.TeamID, &u.AskingTeamID,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. Unique violations on username or email are
// translated to their domain errors.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Username, user.Email, user.Password, user.Type,
		user.RegisterToken, user.DiscordID, user.TeamID, user.AskingTeamID,
	)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return domain.ErrUsernameAlreadyUsed
		}
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrEmailAlreadyUsed
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getByField(ctx, "id", userID)
}

// GetByEmail returns a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByField(ctx, "email", email)
}

// GetByUsername returns a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getByField(ctx, "username", username)
}

// GetByRegisterToken returns the user holding a pending confirmation token.
func (r *UserRepository) GetByRegisterToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getByField(ctx, "register_token", token)
}

func (r *UserRepository) getByField(ctx context.Context, field, value string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+field+" = $1", value,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}
	return user, nil
}

// SetJoinRequest records a pending join request and the requested role in a
// single write.
func (r *UserRepository) SetJoinRequest(ctx context.Context, userID, teamID string, userType domain.UserType) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users SET asking_team_id = $2, type = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID, teamID, userType,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set join request: %w", err)
	}
	return user, nil
}

// ClearJoinRequest removes any pending join request.
func (r *UserRepository) ClearJoinRequest(ctx context.Context, userID string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users SET asking_team_id = NULL, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to clear join request: %w", err)
	}
	return user, nil
}

// JoinTeam sets the team and clears the pending request in one statement, so
// the user is never left in neither state.
func (r *UserRepository) JoinTeam(ctx context.Context, userID, teamID string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users SET team_id = $2, asking_team_id = NULL, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID, teamID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to join team: %w", err)
	}
	return user, nil
}

// ClearRegisterToken marks the account's email as confirmed.
func (r *UserRepository) ClearRegisterToken(ctx context.Context, userID string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users SET register_token = NULL, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to clear register token: %w", err)
	}
	return user, nil
}

// Delete removes a user. Admin and test teardown only.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
