package domain

import "context"

// DiscountSwitchSSBU is the promotional item reserved for SSBU participants
// who bring their own console.
const DiscountSwitchSSBU = "discount-switch-ssbu"

// Item is a catalog entry. Stock is nil for items sold without limit. Left is
// computed per read and never persisted.
type Item struct {
	ID        string
	Name      string
	Category  string
	Attribute *string
	Price     int
	Infos     *string
	Image     *string
	Stock     *int
	Left      *int
}

// ItemRepository defines the contract for catalog reads.
type ItemRepository interface {
	GetAll(ctx context.Context) ([]*Item, error)
	GetByID(ctx context.Context, itemID string) (*Item, error)
	// ReservedQuantities sums cart item quantities per item over carts that
	// are pending or paid.
	ReservedQuantities(ctx context.Context) (map[string]int, error)
}
