package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/shop-pricing/internal/domain"
)

type CartRepository interface {
	SaveItems(ctx context.Context, cart *domain.Cart) error
	GetItems(ctx context.Context, cartID uuid.UUID) (map[domain.ProductType]int, error)
	DeleteCart(ctx context.Context, cartID uuid.UUID) (bool, error)
}
