package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// TeamRepository implements team storage over PostgreSQL.
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts the team and attaches its captain in one transaction.
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO teams (id, name, tournament_id, captain_id, locked)
		 VALUES ($1, $2, $3, $4, FALSE)`,
		team.ID, team.Name, team.TournamentID, team.CaptainID,
	)
	if err != nil {
		if isUniqueViolation(err, "teams_name_key") {
			return domain.ErrTeamNameAlreadyUsed
		}
		return fmt.Errorf("failed to create team: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET team_id = $2, updated_at = NOW() WHERE id = $1`,
		team.CaptainID, team.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to attach captain: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID returns a team with its confirmed members loaded.
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	var team domain.Team
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, tournament_id, captain_id, locked FROM teams WHERE id = $1",
		teamID,
	).Scan(&team.ID, &team.Name, &team.TournamentID, &team.CaptainID, &team.Locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE team_id = $1 ORDER BY created_at",
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		team.Players = append(team.Players, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	return &team, nil
}

// ExistsName checks whether a team name is taken.
func (r *TeamRepository) ExistsName(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM teams WHERE name = $1", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check team name: %w", err)
	}
	return count > 0, nil
}

// CountCoaches counts coach-type users attached to the team, members and
// pending requesters combined. One aggregate keeps the two sources consistent
// within a single read.
func (r *TeamRepository) CountCoaches(ctx context.Context, teamID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users
		 WHERE type = 'coach' AND (team_id = $1 OR asking_team_id = $1)`,
		teamID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count coaches: %w", err)
	}
	return count, nil
}

// GetPendingRequester returns the user with a pending request to the team.
func (r *TeamRepository) GetPendingRequester(ctx context.Context, teamID, userID string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1 AND asking_team_id = $2",
		userID, teamID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get pending requester: %w", err)
	}
	return user, nil
}

// Delete removes a team. Admin and test teardown only.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM teams WHERE id = $1", teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}
