package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-pricing/internal/db"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"github.com/nikolayk812/shop-pricing/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) SaveItems(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return fmt.Errorf("cart is nil")
	}

	items := cart.Items()
	if len(items) == 0 {
		return nil
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		for product, quantity := range items {
			err := q.UpsertItem(ctx, db.UpsertItemParams{
				CartID:     cart.ID(),
				CustomerID: cart.Customer().ID(),
				Product:    product.String(),
				Quantity:   int64(quantity),
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.UpsertItem: %w", err)
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *cartRepository) GetItems(ctx context.Context, cartID uuid.UUID) (map[domain.ProductType]int, error) {
	if cartID == uuid.Nil {
		return nil, fmt.Errorf("cartID is empty")
	}

	rows, err := r.q.GetItems(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("q.GetItems: %w", err)
	}

	items, err := mapGetItemsRowsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapGetItemsRowsToDomain: %w", err)
	}

	return items, nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, cartID uuid.UUID) (bool, error) {
	if cartID == uuid.Nil {
		return false, fmt.Errorf("cartID is empty")
	}

	rowsAffected, err := r.q.DeleteCart(ctx, cartID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteCart: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapGetItemsRowsToDomain(rows []db.GetItemsRow) (map[domain.ProductType]int, error) {
	items := make(map[domain.ProductType]int, len(rows))

	for _, row := range rows {
		product, err := domain.ParseProductType(row.Product)
		if err != nil {
			return nil, fmt.Errorf("domain.ParseProductType: %w", err)
		}

		items[product] = int(row.Quantity)
	}

	return items, nil
}
