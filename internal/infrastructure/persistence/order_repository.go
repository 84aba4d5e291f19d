package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, lines included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the orders with the given ids. Missing ids are simply
// absent from the result.
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id IN ?", ids).
		Order("order_date DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// FindByUser finds orders placed by a user
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*order.Order, error) {
	var orderModels []models.OrderModel
	query := applyOrderFilter(
		r.db.WithContext(ctx).Preload("Lines").Where("user_id = ?", userID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(orderModels), nil
}

// CountByUser counts orders placed by a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its lines
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		return saveOrderLines(tx, model)
	})
}

// SaveWithLock saves with optimistic locking on the aggregate version
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.OrderModel{}).
			Where("id = ?", model.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != model.Version {
			return shared.ErrConcurrencyConflict
		}

		model.Version++
		model.UpdatedAt = time.Now()

		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", model.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":      model.Status,
				"order_total": model.OrderTotal,
				"version":     model.Version,
				"updated_at":  model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return saveOrderLines(tx, model)
	})
	if err != nil {
		return err
	}

	o.Version = model.Version
	o.UpdatedAt = model.UpdatedAt
	return nil
}

// saveOrderLines replaces the order's line set with the given one
func saveOrderLines(tx *gorm.DB, model *models.OrderModel) error {
	lineIDs := make([]uuid.UUID, len(model.Lines))
	for i, line := range model.Lines {
		lineIDs[i] = line.ID
	}

	if len(lineIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", model.ID, lineIDs).
			Delete(&models.OrderLineModel{}).Error; err != nil {
			return err
		}
	} else if err := tx.Where("order_id = ?", model.ID).
		Delete(&models.OrderLineModel{}).Error; err != nil {
		return err
	}

	for i := range model.Lines {
		model.Lines[i].OrderID = model.ID
		if err := tx.Save(&model.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func toDomainOrders(orderModels []models.OrderModel) []*order.Order {
	orders := make([]*order.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders
}

// applyOrderFilter applies pagination and ordering to an order query
func applyOrderFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("order_date DESC")
	}

	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
