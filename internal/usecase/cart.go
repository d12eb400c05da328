package usecase

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// CartUseCase implements order operations with stock re-validation.
type CartUseCase struct {
	cartRepo domain.CartRepository
	itemRepo domain.ItemRepository
	userRepo domain.UserRepository
	logger   *logrus.Logger

	// itemLocks serializes stock validation per item id. The catalog read
	// path stays lock-free; only the purchase path, which writes, must not
	// race itself.
	itemLocks *KeyedLock
}

// NewCartUseCase creates a new CartUseCase.
func NewCartUseCase(cartRepo domain.CartRepository, itemRepo domain.ItemRepository, userRepo domain.UserRepository, logger *logrus.Logger) domain.CartUseCase {
	return &CartUseCase{
		cartRepo:  cartRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		logger:    logger,
		itemLocks: NewKeyedLock(),
	}
}

// CreateCart opens a pending cart for the user. Availability is validated
// again here, under per-item locks, because the catalog read gives no
// isolation guarantee.
func (uc *CartUseCase) CreateCart(ctx context.Context, userID string, lines []*domain.CartItem) (*domain.Cart, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	quantities := make(map[string]int)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		quantities[line.ItemID] += line.Quantity
	}

	stocked := make(map[string]int)
	for itemID := range quantities {
		item, err := uc.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item.Stock != nil {
			stocked[itemID] = *item.Stock
		}
	}

	// Lock stocked items in a stable order to keep concurrent carts from
	// deadlocking on each other.
	ids := make([]string, 0, len(stocked))
	for itemID := range stocked {
		ids = append(ids, itemID)
	}
	sort.Strings(ids)
	for _, itemID := range ids {
		uc.itemLocks.Lock(itemID)
		defer uc.itemLocks.Unlock(itemID)
	}

	if len(stocked) > 0 {
		reserved, err := uc.itemRepo.ReservedQuantities(ctx)
		if err != nil {
			return nil, err
		}
		for itemID, stock := range stocked {
			if reserved[itemID]+quantities[itemID] > stock {
				return nil, domain.ErrItemOutOfStock
			}
		}
	}

	cart := &domain.Cart{
		ID:               uuid.NewString(),
		UserID:           userID,
		TransactionState: domain.TransactionPending,
	}
	for _, line := range lines {
		cart.Items = append(cart.Items, &domain.CartItem{
			ID:       uuid.NewString(),
			ItemID:   line.ItemID,
			CartID:   cart.ID,
			Quantity: line.Quantity,
		})
	}

	if err := uc.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}

	uc.logger.WithFields(logrus.Fields{
		"cart_id": cart.ID,
		"user_id": userID,
		"lines":   len(cart.Items),
	}).Info("Cart created")

	return cart, nil
}

// GetCarts returns all carts of the user, lines included.
func (uc *CartUseCase) GetCarts(ctx context.Context, userID string) ([]*domain.Cart, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetByUser(ctx, userID)
}
