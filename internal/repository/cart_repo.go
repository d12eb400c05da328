package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// CartRepository implements cart storage over PostgreSQL.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sql.DB) domain.CartRepository {
	return &CartRepository{db: db}
}

// Create persists the cart and all its lines in one transaction.
func (r *CartRepository) Create(ctx context.Context, cart *domain.Cart) (err error) {
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
		`INSERT INTO carts (id, user_id, transaction_state) VALUES ($1, $2, $3)`,
		cart.ID, cart.UserID, cart.TransactionState,
	)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}

	for _, line := range cart.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cart_items (id, item_id, cart_id, quantity) VALUES ($1, $2, $3, $4)`,
			line.ID, line.ItemID, cart.ID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to create cart item %s: %w", line.ItemID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByUser returns all carts of a user, lines included.
func (r *CartRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, transaction_state FROM carts WHERE user_id = $1 ORDER BY created_at",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user carts: %w", err)
	}
	defer rows.Close()

	var carts []*domain.Cart
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(&cart.ID, &cart.UserID, &cart.TransactionState); err != nil {
			return nil, fmt.Errorf("failed to scan cart: %w", err)
		}
		carts = append(carts, &cart)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate carts: %w", err)
	}

	for _, cart := range carts {
		if cart.Items, err = r.getLines(ctx, cart.ID); err != nil {
			return nil, err
		}
	}

	return carts, nil
}

func (r *CartRepository) getLines(ctx context.Context, cartID string) ([]*domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, item_id, cart_id, quantity FROM cart_items WHERE cart_id = $1", cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	var lines []*domain.CartItem
	for rows.Next() {
		var line domain.CartItem
		if err := rows.Scan(&line.ID, &line.ItemID, &line.CartID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		lines = append(lines, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return lines, nil
}
