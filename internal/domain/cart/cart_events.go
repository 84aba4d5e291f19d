package cart

import (
	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/shared"
)

// CartCreatedEvent is raised when a cart is created
type CartCreatedEvent struct {
	shared.BaseDomainEvent
	CartID     uuid.UUID `json:"cart_id"`
	OwnerEmail string    `json:"owner_email"`
	Name       string    `json:"name"`
}

func NewCartCreatedEvent(cartID uuid.UUID, ownerEmail, name string) *CartCreatedEvent {
	return &CartCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("cart.created", "ShoppingCart", cartID),
		CartID:          cartID,
		OwnerEmail:      ownerEmail,
		Name:            name,
	}
}

// GuestCartsMergedEvent is raised after guest carts fold into a user's cart
type GuestCartsMergedEvent struct {
	shared.BaseDomainEvent
	CartID      uuid.UUID `json:"cart_id"`
	OwnerEmail  string    `json:"owner_email"`
	MergedItems int       `json:"merged_items"`
}

func NewGuestCartsMergedEvent(cartID uuid.UUID, ownerEmail string, mergedItems int) *GuestCartsMergedEvent {
	return &GuestCartsMergedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("cart.guest_carts_merged", "ShoppingCart", cartID),
		CartID:          cartID,
		OwnerEmail:      ownerEmail,
		MergedItems:     mergedItems,
	}
}

// CartSharedEvent is raised when a share token is created for a cart
type CartSharedEvent struct {
	shared.BaseDomainEvent
	ShareID    uuid.UUID       `json:"share_id"`
	CartID     uuid.UUID       `json:"cart_id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Permission SharePermission `json:"permission"`
}

func NewCartSharedEvent(shareID, cartID, ownerID uuid.UUID, permission SharePermission) *CartSharedEvent {
	return &CartSharedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("cart.shared", "CartShare", shareID),
		ShareID:         shareID,
		CartID:          cartID,
		OwnerID:         ownerID,
		Permission:      permission,
	}
}

// CartShareRevokedEvent is raised when an owner revokes a share token
type CartShareRevokedEvent struct {
	shared.BaseDomainEvent
	ShareID uuid.UUID `json:"share_id"`
	CartID  uuid.UUID `json:"cart_id"`
}

func NewCartShareRevokedEvent(shareID, cartID uuid.UUID) *CartShareRevokedEvent {
	return &CartShareRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("cart.share_revoked", "CartShare", shareID),
		ShareID:         shareID,
		CartID:          cartID,
	}
}

// CartInvitationAcceptedEvent is raised when an invitee accepts
type CartInvitationAcceptedEvent struct {
	shared.BaseDomainEvent
	InvitationID uuid.UUID `json:"invitation_id"`
	CartID       uuid.UUID `json:"cart_id"`
	InviteeEmail string    `json:"invitee_email"`
}

func NewCartInvitationAcceptedEvent(invitationID, cartID uuid.UUID, inviteeEmail string) *CartInvitationAcceptedEvent {
	return &CartInvitationAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("cart.invitation_accepted", "CartInvitation", invitationID),
		InvitationID:    invitationID,
		CartID:          cartID,
		InviteeEmail:    inviteeEmail,
	}
}
