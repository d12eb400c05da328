package usecase

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// catalogOrder is the canonical display sequence for sized apparel. Items
// outside this list keep their source order after the recognized ones.
var catalogOrder = []string{
	"tshirt-f-s",
	"tshirt-f-m",
	"tshirt-f-l",
	"tshirt-f-xl",
	"tshirt-h-s",
	"tshirt-h-m",
	"tshirt-h-l",
	"tshirt-h-xl",
}

// ItemUseCase implements catalog reads with stock availability.
type ItemUseCase struct {
	itemRepo domain.ItemRepository
	logger   *logrus.Logger
}

// NewItemUseCase creates a new ItemUseCase.
func NewItemUseCase(itemRepo domain.ItemRepository, logger *logrus.Logger) domain.ItemUseCase {
	return &ItemUseCase{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// ListItems returns the catalog in canonical order with remaining stock
// computed, filtered for the caller's team.
func (uc *ItemUseCase) ListItems(ctx context.Context, team *domain.Team) ([]*domain.Item, error) {
	items, err := uc.itemRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	reserved, err := uc.itemRepo.ReservedQuantities(ctx)
	if err != nil {
		return nil, err
	}

	items = uc.computeAvailability(items, reserved)
	return FilterForTeam(items, team), nil
}

// computeAvailability orders the catalog and fills Left for stocked items.
// Items without a stock keep a nil Left, meaning unlimited.
func (uc *ItemUseCase) computeAvailability(items []*domain.Item, reserved map[string]int) []*domain.Item {
	sort.SliceStable(items, func(i, j int) bool {
		return catalogIndex(items[i].ID) < catalogIndex(items[j].ID)
	})

	for _, item := range items {
		if item.Stock == nil {
			continue
		}

		left := *item.Stock - reserved[item.ID]
		if left < 0 {
			// Reservations exceeding stock should never happen. Keep the
			// clamp and surface the anomaly through the logs.
			uc.logger.WithFields(logrus.Fields{
				"item_id":  item.ID,
				"stock":    *item.Stock,
				"reserved": reserved[item.ID],
			}).Warn("Item over-reserved, clamping left to zero")
			left = 0
		}
		item.Left = &left
	}

	return items
}

// catalogIndex ranks an item id in the canonical display sequence. Unknown
// ids rank after all known ones.
func catalogIndex(itemID string) int {
	for i, id := range catalogOrder {
		if id == itemID {
			return i
		}
	}
	return len(catalogOrder)
}

// FilterForTeam removes the SSBU console discount unless the team plays the
// SSBU tournament.
func FilterForTeam(items []*domain.Item, team *domain.Team) []*domain.Item {
	if team != nil && team.TournamentID != nil && *team.TournamentID == domain.TournamentSSBU {
		return items
	}

	filtered := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if item.ID != domain.DiscountSwitchSSBU {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
