package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/shared"
)

// DefaultShareExpiryDays is how long shares and invitations stay usable
// when no explicit expiry is requested
const DefaultShareExpiryDays = 7

// SharePermission is the access level granted by a share or invitation
type SharePermission string

const (
	PermissionViewOnly SharePermission = "VIEW_ONLY"
	PermissionEdit     SharePermission = "EDIT"
	PermissionAdmin    SharePermission = "ADMIN"
)

// IsValid checks if the permission is a known SharePermission
func (p SharePermission) IsValid() bool {
	switch p {
	case PermissionViewOnly, PermissionEdit, PermissionAdmin:
		return true
	}
	return false
}

// String returns the string representation of SharePermission
func (p SharePermission) String() string {
	return string(p)
}

// ParseSharePermission parses a string into a SharePermission,
// case-insensitively
func ParseSharePermission(s string) (SharePermission, error) {
	p := SharePermission(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", shared.NewDomainError("INVALID_PERMISSION", "Unrecognized share permission: "+s)
	}
	return p, nil
}

// CartShare is a token-based grant of access to a cart. Anyone holding an
// active, unexpired token gets the share's permission level.
type CartShare struct {
	shared.BaseAggregateRoot
	ShareToken string
	CartID     uuid.UUID
	OwnerID    uuid.UUID
	OwnerEmail string
	Permission SharePermission
	ExpiresAt  time.Time
	Active     bool
}

// NewCartShare creates an active share token for a cart. expiryDays <= 0
// means the default expiry.
func NewCartShare(cartID, ownerID uuid.UUID, ownerEmail string, permission SharePermission, expiryDays int) (*CartShare, error) {
	if cartID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHARE", "Share must reference a cart")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHARE", "Share must have an owner")
	}
	if !permission.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Unrecognized share permission: "+permission.String())
	}
	if expiryDays <= 0 {
		expiryDays = DefaultShareExpiryDays
	}

	share := &CartShare{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShareToken:        uuid.NewString(),
		CartID:            cartID,
		OwnerID:           ownerID,
		OwnerEmail:        ownerEmail,
		Permission:        permission,
		ExpiresAt:         time.Now().AddDate(0, 0, expiryDays),
		Active:            true,
	}
	share.AddDomainEvent(NewCartSharedEvent(share.ID, cartID, ownerID, permission))
	return share, nil
}

// IsUsable reports whether the token still grants access
func (s *CartShare) IsUsable(now time.Time) bool {
	return s.Active && s.ExpiresAt.After(now)
}

// Revoke deactivates the share. Revoking an already revoked share is a
// no-op.
func (s *CartShare) Revoke() {
	if !s.Active {
		return
	}
	s.Active = false
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewCartShareRevokedEvent(s.ID, s.CartID))
}

// CartInvitation is a direct, email-addressed invitation to a cart. Unlike
// a token share it names the invitee and must be accepted.
type CartInvitation struct {
	shared.BaseAggregateRoot
	CartID       uuid.UUID
	InviterID    uuid.UUID
	InviterEmail string
	InviteeEmail string
	Permission   SharePermission
	InvitedAt    time.Time
	ExpiresAt    time.Time
	Accepted     bool
	Active       bool
}

// NewCartInvitation invites an email address to a cart with the default
// expiry
func NewCartInvitation(cartID, inviterID uuid.UUID, inviterEmail, inviteeEmail string, permission SharePermission) (*CartInvitation, error) {
	if cartID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVITATION", "Invitation must reference a cart")
	}
	if inviterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVITATION", "Invitation must have an inviter")
	}
	if inviteeEmail == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invitee email cannot be empty")
	}
	if !permission.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Unrecognized share permission: "+permission.String())
	}

	now := time.Now()
	return &CartInvitation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CartID:            cartID,
		InviterID:         inviterID,
		InviterEmail:      inviterEmail,
		InviteeEmail:      inviteeEmail,
		Permission:        permission,
		InvitedAt:         now,
		ExpiresAt:         now.AddDate(0, 0, DefaultShareExpiryDays),
		Accepted:          false,
		Active:            true,
	}, nil
}

// IsOpen reports whether the invitation can still be accepted
func (i *CartInvitation) IsOpen(now time.Time) bool {
	return i.Active && !i.Accepted && i.ExpiresAt.After(now)
}

// Accept marks the invitation as accepted. Expired or inactive invitations
// cannot be accepted.
func (i *CartInvitation) Accept(now time.Time) error {
	if !i.Active || !i.ExpiresAt.After(now) {
		return shared.NewDomainError("INVITATION_EXPIRED", "Invitation is no longer valid")
	}
	if i.Accepted {
		return nil
	}
	i.Accepted = true
	i.UpdatedAt = now
	i.AddDomainEvent(NewCartInvitationAcceptedEvent(i.ID, i.CartID, i.InviteeEmail))
	return nil
}
