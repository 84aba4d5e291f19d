package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/shared"
)

// Repository defines persistence for the Order aggregate. Implementations
// load and save orders together with their lines.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists the order using optimistic locking on Version
	SaveWithLock(ctx context.Context, order *Order) error
}

// LineRepository provides seller-scoped line queries that cut across
// order aggregates
type LineRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderLine, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderLine, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]OrderLine, error)
	FindByOrderAndSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]OrderLine, error)
	// DistinctOrderIDsBySeller lists the ids of orders containing at least
	// one line fulfilled by the seller
	DistinctOrderIDsBySeller(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error)
}
