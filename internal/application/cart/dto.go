package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/cart"
)

// ==================== Cart DTOs ====================

// CreateCartRequest represents a request to create a cart
type CreateCartRequest struct {
	Name string `json:"name" binding:"max=100"`
}

// AddItemRequest represents adding a product item to a cart. When the same
// product item and size is already in the cart the quantity is replaced.
type AddItemRequest struct {
	ProductItemID uuid.UUID `json:"product_item_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	Size          string    `json:"size" binding:"max=50"`
}

// UpdateItemQuantityRequest represents changing a cart item's quantity
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// InviteToCartRequest represents adding an email to a cart's invite list
type InviteToCartRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GuestCartItemInput is one item of a guest cart held client-side before
// sign-in. Size is a pointer because guest carts serialize missing sizes
// as null; null and empty string are the same variant.
type GuestCartItemInput struct {
	ProductItemID uuid.UUID `json:"product_item_id" binding:"required"`
	Quantity      int       `json:"quantity"`
	Size          *string   `json:"size"`
}

// NormalizedSize maps a missing size to the empty string
func (i GuestCartItemInput) NormalizedSize() string {
	if i.Size == nil {
		return ""
	}
	return *i.Size
}

// GuestCartInput is a guest cart submitted at sign-in
type GuestCartInput struct {
	Items []GuestCartItemInput `json:"items"`
}

// MergeCartsRequest represents the sign-in merge of guest carts into the
// user's default cart
type MergeCartsRequest struct {
	GuestCarts []GuestCartInput `json:"guest_carts"`
}

// CartItemResponse represents a cart item in API responses
type CartItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	CartID        uuid.UUID       `json:"cart_id"`
	ProductItemID uuid.UUID       `json:"product_item_id"`
	ProductName   string          `json:"product_name"`
	Size          string          `json:"size,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	OwnerEmail    string             `json:"owner_email"`
	InvitedEmails []string           `json:"invited_emails"`
	Items         []CartItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ==================== Sharing DTOs ====================

// CreateShareRequest represents creating a share token for a cart
type CreateShareRequest struct {
	CartID     uuid.UUID `json:"cart_id" binding:"required"`
	Permission string    `json:"permission" binding:"required"`
	ExpiryDays *int      `json:"expiry_days" binding:"omitempty,min=1,max=365"`
}

// InviteUserRequest represents inviting an email address to a cart
type InviteUserRequest struct {
	CartID       uuid.UUID `json:"cart_id" binding:"required"`
	InviteeEmail string    `json:"invitee_email" binding:"required,email"`
	Permission   string    `json:"permission" binding:"required"`
	Message      string    `json:"message" binding:"max=1000"`
}

// AcceptInvitationRequest represents accepting a cart invitation
type AcceptInvitationRequest struct {
	InvitationID uuid.UUID `json:"invitation_id" binding:"required"`
}

// ShareResponse represents a cart share in API responses
type ShareResponse struct {
	ID         uuid.UUID `json:"id"`
	ShareToken string    `json:"share_token"`
	ShareURL   string    `json:"share_url"`
	CartID     uuid.UUID `json:"cart_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OwnerEmail string    `json:"owner_email"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Active     bool      `json:"active"`
}

// InvitationResponse represents a cart invitation in API responses
type InvitationResponse struct {
	ID           uuid.UUID `json:"id"`
	CartID       uuid.UUID `json:"cart_id"`
	InviterID    uuid.UUID `json:"inviter_id"`
	InviterEmail string    `json:"inviter_email"`
	InviteeEmail string    `json:"invitee_email"`
	Permission   string    `json:"permission"`
	InvitedAt    time.Time `json:"invited_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Accepted     bool      `json:"accepted"`
	Active       bool      `json:"active"`
}

// ==================== Mappers ====================

// ToCartItemResponse converts a domain cart item to a response DTO
func ToCartItemResponse(item *cart.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:            item.ID,
		CartID:        item.CartID,
		ProductItemID: item.ProductItemID,
		ProductName:   item.ProductName,
		Size:          item.Size,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// ToCartResponse converts a domain cart to a response DTO
func ToCartResponse(c *cart.ShoppingCart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i := range c.Items {
		items[i] = ToCartItemResponse(&c.Items[i])
	}
	invited := c.InvitedEmails
	if invited == nil {
		invited = []string{}
	}
	return CartResponse{
		ID:            c.ID,
		Name:          c.Name,
		OwnerEmail:    c.OwnerEmail,
		InvitedEmails: invited,
		Items:         items,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCartResponses converts a slice of domain carts
func ToCartResponses(carts []*cart.ShoppingCart) []CartResponse {
	out := make([]CartResponse, len(carts))
	for i, c := range carts {
		out[i] = ToCartResponse(c)
	}
	return out
}

// ToShareResponse converts a domain cart share to a response DTO. shareBaseURL
// is the frontend prefix the token is appended to.
func ToShareResponse(s *cart.CartShare, shareBaseURL string) ShareResponse {
	return ShareResponse{
		ID:         s.ID,
		ShareToken: s.ShareToken,
		ShareURL:   shareBaseURL + "/" + s.ShareToken,
		CartID:     s.CartID,
		OwnerID:    s.OwnerID,
		OwnerEmail: s.OwnerEmail,
		Permission: s.Permission.String(),
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt,
		Active:     s.Active,
	}
}

// ToInvitationResponse converts a domain cart invitation to a response DTO
func ToInvitationResponse(i *cart.CartInvitation) InvitationResponse {
	return InvitationResponse{
		ID:           i.ID,
		CartID:       i.CartID,
		InviterID:    i.InviterID,
		InviterEmail: i.InviterEmail,
		InviteeEmail: i.InviteeEmail,
		Permission:   i.Permission.String(),
		InvitedAt:    i.InvitedAt,
		ExpiresAt:    i.ExpiresAt,
		Accepted:     i.Accepted,
		Active:       i.Active,
	}
}
