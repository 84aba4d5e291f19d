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

// GormCartShareRepository implements cart.ShareRepository using GORM
type GormCartShareRepository struct {
	db *gorm.DB
}

// NewGormCartShareRepository creates a new GormCartShareRepository
func NewGormCartShareRepository(db *gorm.DB) *GormCartShareRepository {
	return &GormCartShareRepository{db: db}
}

// FindByID finds a share by its ID
func (r *GormCartShareRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartShare, error) {
	var model models.CartShareModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByToken looks up an active share by its token
func (r *GormCartShareRepository) FindActiveByToken(ctx context.Context, token string) (*cart.CartShare, error) {
	var model models.CartShareModel
	if err := r.db.WithContext(ctx).
		Where("share_token = ? AND is_active = ?", token, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDAndOwner finds a share by ID scoped to its owner
func (r *GormCartShareRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*cart.CartShare, error) {
	var model models.CartShareModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCart lists the shares created for a cart
func (r *GormCartShareRepository) FindByCart(ctx context.Context, cartID uuid.UUID) ([]*cart.CartShare, error) {
	var shareModels []models.CartShareModel
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at DESC").
		Find(&shareModels).Error; err != nil {
		return nil, err
	}

	shares := make([]*cart.CartShare, len(shareModels))
	for i := range shareModels {
		shares[i] = shareModels[i].ToDomain()
	}
	return shares, nil
}

// Save creates or updates a share
func (r *GormCartShareRepository) Save(ctx context.Context, share *cart.CartShare) error {
	model := models.CartShareModelFromDomain(share)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormCartShareRepository implements cart.ShareRepository
var _ cart.ShareRepository = (*GormCartShareRepository)(nil)

// GormCartInvitationRepository implements cart.InvitationRepository using GORM
type GormCartInvitationRepository struct {
	db *gorm.DB
}

// NewGormCartInvitationRepository creates a new GormCartInvitationRepository
func NewGormCartInvitationRepository(db *gorm.DB) *GormCartInvitationRepository {
	return &GormCartInvitationRepository{db: db}
}

// FindByID finds an invitation by its ID
func (r *GormCartInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartInvitation, error) {
	var model models.CartInvitationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByInvitee lists active, unaccepted invitations addressed to the email
func (r *GormCartInvitationRepository) FindOpenByInvitee(ctx context.Context, inviteeEmail string) ([]*cart.CartInvitation, error) {
	var invitationModels []models.CartInvitationModel
	if err := r.db.WithContext(ctx).
		Where("invitee_email = ? AND is_active = ? AND accepted = ?", inviteeEmail, true, false).
		Order("invited_at DESC").
		Find(&invitationModels).Error; err != nil {
		return nil, err
	}

	invitations := make([]*cart.CartInvitation, len(invitationModels))
	for i := range invitationModels {
		invitations[i] = invitationModels[i].ToDomain()
	}
	return invitations, nil
}

// Save creates or updates an invitation
func (r *GormCartInvitationRepository) Save(ctx context.Context, invitation *cart.CartInvitation) error {
	model := models.CartInvitationModelFromDomain(invitation)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormCartInvitationRepository implements cart.InvitationRepository
var _ cart.InvitationRepository = (*GormCartInvitationRepository)(nil)
