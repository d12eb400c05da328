package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
	"github.com/cmlichen-UTT/UA-api/internal/mocks"
	"github.com/cmlichen-UTT/UA-api/internal/usecase"
)

func intPtr(n int) *int {
	return &n
}

func stockedItem(id string, stock int) *domain.Item {
	return &domain.Item{ID: id, Name: id, Category: "supplement", Stock: intPtr(stock)}
}

func ssbuTeam() *domain.Team {
	tournament := domain.TournamentSSBU
	return &domain.Team{ID: "t1", Name: "smashers", TournamentID: &tournament}
}

func TestListItems_ComputesLeft(t *testing.T) {
	ctx := context.Background()
	itemRepo := &mocks.ItemRepository{}
	uc := usecase.NewItemUseCase(itemRepo, testLogger())

	itemRepo.On("GetAll", ctx).Return([]*domain.Item{
		stockedItem("tshirt-f-m", 10),
		{ID: "ticket-player", Name: "Place joueur", Category: "ticket"},
	}, nil)
	itemRepo.On("ReservedQuantities", ctx).Return(map[string]int{"tshirt-f-m": 4}, nil)

	items, err := uc.ListItems(ctx, ssbuTeam())

	assert.NoError(t, err)
	assert.Len(t, items, 2)

	byID := make(map[string]*domain.Item)
	for _, item := range items {
		byID[item.ID] = item
	}

	// Stocked item: left = stock - reserved.
	assert.Equal(t, 6, *byID["tshirt-f-m"].Left)
	// Unlimited item keeps a nil left.
	assert.Nil(t, byID["ticket-player"].Left)
}

func TestListItems_ClampsNegativeLeft(t *testing.T) {
	ctx := context.Background()
	itemRepo := &mocks.ItemRepository{}
	uc := usecase.NewItemUseCase(itemRepo, testLogger())

	itemRepo.On("GetAll", ctx).Return([]*domain.Item{stockedItem("tshirt-h-l", 10)}, nil)
	// Over-reserved: more quantity in active carts than stock.
	itemRepo.On("ReservedQuantities", ctx).Return(map[string]int{"tshirt-h-l": 14}, nil)

	items, err := uc.ListItems(ctx, ssbuTeam())

	assert.NoError(t, err)
	assert.Equal(t, 0, *items[0].Left)
}

func TestListItems_ExactlySoldOut(t *testing.T) {
	ctx := context.Background()
	itemRepo := &mocks.ItemRepository{}
	uc := usecase.NewItemUseCase(itemRepo, testLogger())

	itemRepo.On("GetAll", ctx).Return([]*domain.Item{stockedItem("tshirt-h-s", 10)}, nil)
	itemRepo.On("ReservedQuantities", ctx).Return(map[string]int{"tshirt-h-s": 10}, nil)

	items, err := uc.ListItems(ctx, ssbuTeam())

	assert.NoError(t, err)
	assert.Equal(t, 0, *items[0].Left)
}

func TestListItems_CanonicalOrder(t *testing.T) {
	ctx := context.Background()
	itemRepo := &mocks.ItemRepository{}
	uc := usecase.NewItemUseCase(itemRepo, testLogger())

	// Source order is scrambled; unknown ids trail in source order.
	itemRepo.On("GetAll", ctx).Return([]*domain.Item{
		{ID: "ticket-player", Category: "ticket"},
		{ID: "tshirt-h-s", Category: "supplement"},
		{ID: "ticket-coach", Category: "ticket"},
		{ID: "tshirt-f-m", Category: "supplement"},
		{ID: "tshirt-f-s", Category: "supplement"},
	}, nil)
	itemRepo.On("ReservedQuantities", ctx).Return(map[string]int{}, nil)

	items, err := uc.ListItems(ctx, ssbuTeam())

	assert.NoError(t, err)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	assert.Equal(t, []string{"tshirt-f-s", "tshirt-f-m", "tshirt-h-s", "ticket-player", "ticket-coach"}, ids)
}

func TestListItems_DiscountFiltered(t *testing.T) {
	ctx := context.Background()
	itemRepo := &mocks.ItemRepository{}
	uc := usecase.NewItemUseCase(itemRepo, testLogger())

	catalog := []*domain.Item{
		{ID: "ticket-player", Category: "ticket"},
		{ID: domain.DiscountSwitchSSBU, Category: "supplement"},
	}
	itemRepo.On("GetAll", ctx).Return(catalog, nil)
	itemRepo.On("ReservedQuantities", ctx).Return(map[string]int{}, nil)

	otherTournament := "lol"

	testCases := []struct {
		name         string
		team         *domain.Team
		wantDiscount bool
	}{
		{name: "no team", team: nil, wantDiscount: false},
		{name: "team without tournament", team: &domain.Team{ID: "t2"}, wantDiscount: false},
		{name: "other tournament", team: &domain.Team{ID: "t3", TournamentID: &otherTournament}, wantDiscount: false},
		{name: "ssbu tournament", team: ssbuTeam(), wantDiscount: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := uc.ListItems(ctx, tc.team)
			assert.NoError(t, err)

			found := false
			for _, item := range items {
				if item.ID == domain.DiscountSwitchSSBU {
					found = true
				}
			}
			assert.Equal(t, tc.wantDiscount, found)
		})
	}
}

func TestFilterForTeam_Pure(t *testing.T) {
	items := []*domain.Item{
		{ID: "ticket-player"},
		{ID: domain.DiscountSwitchSSBU},
	}

	filtered := usecase.FilterForTeam(items, nil)

	assert.Len(t, filtered, 1)
	// The input slice is left untouched.
	assert.Len(t, items, 2)
}
