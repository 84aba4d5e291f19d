package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
)

// GormOrderLineRepository implements order.LineRepository using GORM.
// Lines are read through here for seller queries; writes go through the
// order aggregate.
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewGormOrderLineRepository creates a new GormOrderLineRepository
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// FindByID finds an order line by its ID
func (r *GormOrderLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.OrderLine, error) {
	var model models.OrderLineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder lists the lines of an order
func (r *GormOrderLineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.OrderLine, error) {
	var lineModels []models.OrderLineModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, err
	}
	return toDomainLines(lineModels), nil
}

// FindBySeller lists lines fulfilled by a seller across all orders
func (r *GormOrderLineRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]order.OrderLine, error) {
	var lineModels []models.OrderLineModel
	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&lineModels).Error; err != nil {
		return nil, err
	}
	return toDomainLines(lineModels), nil
}

// FindByOrderAndSeller lists the seller's lines within a single order
func (r *GormOrderLineRepository) FindByOrderAndSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]order.OrderLine, error) {
	var lineModels []models.OrderLineModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND seller_id = ?", orderID, sellerID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, err
	}
	return toDomainLines(lineModels), nil
}

// DistinctOrderIDsBySeller lists ids of orders containing at least one line
// fulfilled by the seller
func (r *GormOrderLineRepository) DistinctOrderIDsBySeller(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.OrderLineModel{}).
		Distinct("order_id").
		Where("seller_id = ?", sellerID).
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func toDomainLines(lineModels []models.OrderLineModel) []order.OrderLine {
	lines := make([]order.OrderLine, len(lineModels))
	for i := range lineModels {
		lines[i] = *lineModels[i].ToDomain()
	}
	return lines
}

// Ensure GormOrderLineRepository implements order.LineRepository
var _ order.LineRepository = (*GormOrderLineRepository)(nil)
