package domain

import "context"

// TransactionState is the payment status of a cart. Only pending and paid
// carts consume stock.
type TransactionState string

const (
	TransactionPending  TransactionState = "pending"
	TransactionPaid     TransactionState = "paid"
	TransactionCanceled TransactionState = "canceled"
	TransactionExpired  TransactionState = "expired"
	TransactionRefunded TransactionState = "refunded"
)

// Cart is a user's order. It is created pending and moves to a final state
// through the payment collaborator.
type Cart struct {
	ID               string
	UserID           string
	TransactionState TransactionState
	Items            []*CartItem
}

// CartItem is one line of a cart.
type CartItem struct {
	ID       string
	ItemID   string
	CartID   string
	Quantity int
}

// CartRepository defines the contract for cart storage.
type CartRepository interface {
	// Create persists the cart and all its lines in one transaction.
	Create(ctx context.Context, cart *Cart) error
	GetByUser(ctx context.Context, userID string) ([]*Cart, error)
}
