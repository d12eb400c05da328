package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// TeamUseCase implements the team membership state machine.
type TeamUseCase struct {
	teamRepo domain.TeamRepository
	userRepo domain.UserRepository
	cfg      config.Config
	logger   *logrus.Logger

	// teamLocks serializes membership transitions per team id, so the coach
	// limit and duplicate-request checks cannot race their own writes.
	teamLocks *KeyedLock
}

// NewTeamUseCase creates a new TeamUseCase.
func NewTeamUseCase(teamRepo domain.TeamRepository, userRepo domain.UserRepository, cfg config.Config, logger *logrus.Logger) domain.TeamUseCase {
	return &TeamUseCase{
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		cfg:       cfg,
		logger:    logger,
		teamLocks: NewKeyedLock(),
	}
}

// CreateTeam creates a team and makes its creator captain and first member.
func (uc *TeamUseCase) CreateTeam(ctx context.Context, name string, tournamentID *string, captainID string) (*domain.Team, error) {
	if name == "" {
		return nil, domain.ErrInvalidTeamName
	}

	captain, err := uc.userRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, err
	}
	if captain.HasTeam() {
		return nil, domain.ErrAlreadyInTeam
	}
	if captain.Type == domain.UserSpectator {
		return nil, domain.ErrNoSpectator
	}
	if captain.HasPendingRequest() {
		return nil, domain.ErrAlreadyAskedATeam
	}

	exists, err := uc.teamRepo.ExistsName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTeamNameAlreadyUsed
	}

	team := &domain.Team{
		ID:           uuid.NewString(),
		Name:         name,
		TournamentID: tournamentID,
		CaptainID:    captainID,
	}
	if err := uc.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	return uc.teamRepo.GetByID(ctx, team.ID)
}

// GetTeam returns a team with its members.
func (uc *TeamUseCase) GetTeam(ctx context.Context, teamID string) (*domain.Team, error) {
	return uc.teamRepo.GetByID(ctx, teamID)
}

// AskJoinTeam files a join request for the user with the requested role. The
// preconditions are checked in a fixed order and the first failing one
// determines the error; nothing is written on failure.
func (uc *TeamUseCase) AskJoinTeam(ctx context.Context, teamID, userID string, userType domain.UserType) (*domain.User, error) {
	uc.teamLocks.Lock(teamID)
	defer uc.teamLocks.Unlock(teamID)

	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.HasTeam() {
		return nil, domain.ErrAlreadyInTeam
	}
	if userType != domain.UserPlayer && userType != domain.UserCoach {
		return nil, domain.ErrInvalidUserType
	}
	if user.Type == domain.UserSpectator {
		return nil, domain.ErrNoSpectator
	}
	if uc.cfg.DiscordLinkRequired && user.DiscordID == nil {
		return nil, domain.ErrNoDiscordAccountLinked
	}
	if team.Locked {
		return nil, domain.ErrTeamLocked
	}
	if user.HasPendingRequest() {
		return nil, domain.ErrAlreadyAskedATeam
	}

	if userType == domain.UserCoach {
		coaches, err := uc.teamRepo.CountCoaches(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if coaches >= uc.cfg.CoachLimit {
			return nil, domain.ErrTeamMaxCoachReached
		}
	}

	updated, err := uc.userRepo.SetJoinRequest(ctx, userID, teamID, userType)
	if err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"team_id":   teamID,
		"user_type": userType,
	}).Info("Join request filed")

	return updated, nil
}

// DeleteTeamRequest clears the user's pending join request. Clearing an
// absent request succeeds.
func (uc *TeamUseCase) DeleteTeamRequest(ctx context.Context, userID string) error {
	if _, err := uc.userRepo.ClearJoinRequest(ctx, userID); err != nil {
		return err
	}
	return nil
}

// AcceptJoinRequest turns a pending request into a membership. The lock state
// and the coach limit may have changed since the request was filed, so both
// are validated again before the transition commits.
func (uc *TeamUseCase) AcceptJoinRequest(ctx context.Context, captainID, userID string) (*domain.User, error) {
	captain, err := uc.userRepo.GetByID(ctx, captainID)
	if err != nil {
		return nil, err
	}
	if !captain.HasTeam() {
		return nil, domain.ErrTeamNotFound
	}
	teamID := *captain.TeamID

	uc.teamLocks.Lock(teamID)
	defer uc.teamLocks.Unlock(teamID)

	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.IsCaptain(captainID) {
		return nil, domain.ErrNotCaptain
	}

	requester, err := uc.teamRepo.GetPendingRequester(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrJoinRequestNotFound
		}
		return nil, err
	}

	if team.Locked {
		return nil, domain.ErrTeamLocked
	}
	if requester.Type == domain.UserCoach {
		// The requester is part of the count as a pending coach, so the
		// combined total may equal the limit but not exceed it.
		coaches, err := uc.teamRepo.CountCoaches(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if coaches > uc.cfg.CoachLimit {
			return nil, domain.ErrTeamMaxCoachReached
		}
	}

	member, err := uc.userRepo.JoinTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"team_id": teamID,
	}).Info("Join request accepted")

	return member, nil
}

// RejectJoinRequest clears a pending request to the captain's team.
func (uc *TeamUseCase) RejectJoinRequest(ctx context.Context, captainID, userID string) error {
	captain, err := uc.userRepo.GetByID(ctx, captainID)
	if err != nil {
		return err
	}
	if !captain.HasTeam() {
		return domain.ErrTeamNotFound
	}
	teamID := *captain.TeamID

	team, err := uc.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if !team.IsCaptain(captainID) {
		return domain.ErrNotCaptain
	}

	if _, err := uc.teamRepo.GetPendingRequester(ctx, teamID, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrJoinRequestNotFound
		}
		return err
	}

	if _, err := uc.userRepo.ClearJoinRequest(ctx, userID); err != nil {
		return err
	}

	uc.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"team_id": teamID,
	}).Info("Join request rejected")

	return nil
}
