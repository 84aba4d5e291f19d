package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for the ShoppingCart aggregate.
// Implementations load and save carts together with their items.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShoppingCart, error)
	FindByOwner(ctx context.Context, ownerEmail string) ([]*ShoppingCart, error)
	FindByInvitee(ctx context.Context, email string) ([]*ShoppingCart, error)
	FindByOwnerAndName(ctx context.Context, ownerEmail, name string) (*ShoppingCart, error)
	Save(ctx context.Context, cart *ShoppingCart) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShareRepository defines persistence for cart share tokens
type ShareRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CartShare, error)
	// FindActiveByToken looks up an active share by its token. Expiry is
	// the caller's concern.
	FindActiveByToken(ctx context.Context, token string) (*CartShare, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*CartShare, error)
	FindByCart(ctx context.Context, cartID uuid.UUID) ([]*CartShare, error)
	Save(ctx context.Context, share *CartShare) error
}

// InvitationRepository defines persistence for cart invitations
type InvitationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CartInvitation, error)
	// FindOpenByInvitee lists active, unaccepted invitations addressed to
	// the email. Expiry is the caller's concern.
	FindOpenByInvitee(ctx context.Context, inviteeEmail string) ([]*CartInvitation, error)
	Save(ctx context.Context, invitation *CartInvitation) error
}
