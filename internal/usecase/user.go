package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/auth"
	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// UserUseCase implements account lifecycle operations.
type UserUseCase struct {
	userRepo domain.UserRepository
	cfg      config.Config
	logger   *logrus.Logger
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo domain.UserRepository, cfg config.Config, logger *logrus.Logger) domain.UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates an unconfirmed account. Sending the confirmation email is
// the notification collaborator's job; the account keeps its register token
// until confirmed.
func (uc *UserUseCase) Register(ctx context.Context, username, email, password string, userType domain.UserType) (*domain.User, error) {
	if !usernameRegexp.MatchString(username) {
		return nil, domain.ErrInvalidUsername
	}
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, domain.ErrInvalidPassword
	}
	switch userType {
	case domain.UserPlayer, domain.UserCoach, domain.UserSpectator, domain.UserAttendant:
	default:
		return nil, domain.ErrInvalidUserType
	}

	hash, err := auth.HashPassword(password, uc.cfg.BcryptRounds)
	if err != nil {
		return nil, err
	}

	registerToken := uuid.NewString()
	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		Password:      hash,
		Type:          userType,
		RegisterToken: &registerToken,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"user_type": userType,
	}).Info("User registered")

	return user, nil
}

// ConfirmEmail clears the register token matching the confirmation link.
func (uc *UserUseCase) ConfirmEmail(ctx context.Context, token string) (*domain.User, error) {
	user, err := uc.userRepo.GetByRegisterToken(ctx, token)
	if err != nil {
		return nil, err
	}

	confirmed, err := uc.userRepo.ClearRegisterToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	uc.logger.WithField("user_id", user.ID).Info("Email confirmed")

	return confirmed, nil
}
