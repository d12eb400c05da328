// Package mocks provides testify mocks for the repository contracts.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// UserRepository is a mock of domain.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) GetByRegisterToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) SetJoinRequest(ctx context.Context, userID, teamID string, userType domain.UserType) (*domain.User, error) {
	args := m.Called(ctx, userID, teamID, userType)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) ClearJoinRequest(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) JoinTeam(ctx context.Context, userID, teamID string) (*domain.User, error) {
	args := m.Called(ctx, userID, teamID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) ClearRegisterToken(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// TeamRepository is a mock of domain.TeamRepository.
type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	var team *domain.Team
	if args.Get(0) != nil {
		team = args.Get(0).(*domain.Team)
	}
	return team, args.Error(1)
}

func (m *TeamRepository) ExistsName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *TeamRepository) CountCoaches(ctx context.Context, teamID string) (int, error) {
	args := m.Called(ctx, teamID)
	return args.Int(0), args.Error(1)
}

func (m *TeamRepository) GetPendingRequester(ctx context.Context, teamID, userID string) (*domain.User, error) {
	args := m.Called(ctx, teamID, userID)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *TeamRepository) Delete(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

// ItemRepository is a mock of domain.ItemRepository.
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) GetAll(ctx context.Context) ([]*domain.Item, error) {
	args := m.Called(ctx)
	var items []*domain.Item
	if args.Get(0) != nil {
		items = args.Get(0).([]*domain.Item)
	}
	return items, args.Error(1)
}

func (m *ItemRepository) GetByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	var item *domain.Item
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.Item)
	}
	return item, args.Error(1)
}

func (m *ItemRepository) ReservedQuantities(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	var reserved map[string]int
	if args.Get(0) != nil {
		reserved = args.Get(0).(map[string]int)
	}
	return reserved, args.Error(1)
}

// CartRepository is a mock of domain.CartRepository.
type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *CartRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Cart, error) {
	args := m.Called(ctx, userID)
	var carts []*domain.Cart
	if args.Get(0) != nil {
		carts = args.Get(0).([]*domain.Cart)
	}
	return carts, args.Error(1)
}

func userOrNil(v any) *domain.User {
	if v == nil {
		return nil
	}
	return v.(*domain.User)
}
