package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID, items included
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.ShoppingCart, error) {
	var model models.ShoppingCartModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner lists the carts owned by an email
func (r *GormCartRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*cart.ShoppingCart, error) {
	var cartModels []models.ShoppingCartModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_email = ?", ownerEmail).
		Order("created_at ASC").
		Find(&cartModels).Error; err != nil {
		return nil, err
	}
	return toDomainCarts(cartModels), nil
}

// FindByInvitee lists carts whose invite list contains the email. The
// invited emails live in a JSON column, so the query prefilters on the
// serialized text (CAST works on both postgres jsonb and the sqlite test
// driver) and the exact match runs in memory to rule out substring hits.
func (r *GormCartRepository) FindByInvitee(ctx context.Context, email string) ([]*cart.ShoppingCart, error) {
	var cartModels []models.ShoppingCartModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("CAST(invited_emails AS TEXT) LIKE ?", "%"+email+"%").
		Order("created_at ASC").
		Find(&cartModels).Error; err != nil {
		return nil, err
	}

	carts := make([]*cart.ShoppingCart, 0)
	for i := range cartModels {
		c := cartModels[i].ToDomain()
		if c.OwnerEmail == email {
			continue
		}
		if c.IsAccessibleBy(email) {
			carts = append(carts, c)
		}
	}
	return carts, nil
}

// FindByOwnerAndName finds a cart by owner email and cart name
func (r *GormCartRepository) FindByOwnerAndName(ctx context.Context, ownerEmail, name string) (*cart.ShoppingCart, error) {
	var model models.ShoppingCartModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_email = ? AND name = ?", ownerEmail, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a cart together with its items
func (r *GormCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	model := models.ShoppingCartModelFromDomain(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		itemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			itemIDs[i] = item.ID
		}

		if len(itemIDs) > 0 {
			if err := tx.Where("cart_id = ? AND id NOT IN ?", model.ID, itemIDs).
				Delete(&models.CartItemModel{}).Error; err != nil {
				return err
			}
		} else if err := tx.Where("cart_id = ?", model.ID).
			Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}

		for i := range model.Items {
			model.Items[i].CartID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ShoppingCartModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func toDomainCarts(cartModels []models.ShoppingCartModel) []*cart.ShoppingCart {
	carts := make([]*cart.ShoppingCart, len(cartModels))
	for i := range cartModels {
		carts[i] = cartModels[i].ToDomain()
	}
	return carts
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
