package usecase

import (
	"context"
	"errors"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/auth"
	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

var (
	emailRegexp    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRegexp = regexp.MustCompile(`^[\p{L}\d_-]{3,100}$`)
)

// AuthUseCase implements the authentication gate.
type AuthUseCase struct {
	userRepo domain.UserRepository
	cfg      config.Config
	logger   *logrus.Logger
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(userRepo domain.UserRepository, cfg config.Config, logger *logrus.Logger) domain.AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Login authenticates by email or username. Unknown accounts and wrong
// passwords both answer with the same error so the endpoint cannot be used to
// enumerate users.
func (uc *AuthUseCase) Login(ctx context.Context, login, password string) (*domain.User, string, error) {
	if login == "" {
		return nil, "", domain.ErrInvalidLogin
	}

	// The identifier is classified by format, email first.
	var user *domain.User
	var err error
	switch {
	case emailRegexp.MatchString(login):
		user, err = uc.userRepo.GetByEmail(ctx, login)
	case usernameRegexp.MatchString(login):
		user, err = uc.userRepo.GetByUsername(ctx, login)
	default:
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.RegisterToken != nil {
		return nil, "", domain.ErrEmailNotConfirmed
	}
	if user.Type == domain.UserAttendant {
		return nil, "", domain.ErrLoginAsAttendant
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(uc.cfg, user)
	if err != nil {
		return nil, "", err
	}

	uc.logger.WithField("user_id", user.ID).Info("User logged in")

	return user, token, nil
}
