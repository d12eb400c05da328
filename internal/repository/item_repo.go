package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

const itemColumns = "id, name, category, attribute, price, infos, image, stock"

// ItemRepository implements catalog reads over PostgreSQL.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(db *sql.DB) domain.ItemRepository {
	return &ItemRepository{db: db}
}

func scanItem(row interface{ Scan(...any) error }) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Attribute,
		&item.Price, &item.Infos, &item.Image, &item.Stock,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetAll returns the whole catalog in source order.
func (r *ItemRepository) GetAll(ctx context.Context) ([]*domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+itemColumns+" FROM items")
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// GetByID returns one catalog item.
func (r *ItemRepository) GetByID(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = $1", itemID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ReservedQuantities sums cart line quantities per item over pending and paid
// carts.
func (r *ItemRepository) ReservedQuantities(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ci.item_id, COALESCE(SUM(ci.quantity), 0)
		 FROM cart_items ci
		 JOIN carts c ON c.id = ci.cart_id
		 WHERE c.transaction_state IN ('pending', 'paid')
		 GROUP BY ci.item_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get reserved quantities: %w", err)
	}
	defer rows.Close()

	reserved := make(map[string]int)
	for rows.Next() {
		var itemID string
		var quantity int
		if err := rows.Scan(&itemID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan reserved quantity: %w", err)
		}
		reserved[itemID] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reserved quantities: %w", err)
	}

	return reserved, nil
}
