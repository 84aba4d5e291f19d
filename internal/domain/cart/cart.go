package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/cart/acl"
	"github.com/shop/backend/internal/domain/shared"
)

// DefaultCartName is the cart that guest carts merge into after sign-in
const DefaultCartName = "My Cart"

// ShoppingCart is the cart aggregate root. Owners are identified by email;
// invited emails grant read access to the cart alongside token shares.
type ShoppingCart struct {
	shared.BaseAggregateRoot
	Name          string
	OwnerEmail    string
	InvitedEmails []string
	Items         []CartItem
}

// CartItem is a product item placed in a cart. Size distinguishes variants
// of the same product item; the empty string means unsized.
type CartItem struct {
	ID            uuid.UUID
	CartID        uuid.UUID
	ProductItemID uuid.UUID
	ProductName   string
	Size          string
	Quantity      int
	UnitPrice     decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MergeKey identifies a cart line for merge and replace lookups. Two items
// collide when they reference the same product item in the same size.
func MergeKey(productItemID uuid.UUID, size string) string {
	return productItemID.String() + "__" + size
}

// MergeKey returns the item's merge identity
func (i *CartItem) MergeKey() string {
	return MergeKey(i.ProductItemID, i.Size)
}

// NewShoppingCart creates a cart owned by the given email
func NewShoppingCart(ownerEmail, name string) (*ShoppingCart, error) {
	if ownerEmail == "" {
		return nil, shared.NewDomainError("INVALID_CART", "Cart must have an owner email")
	}
	if name == "" {
		name = DefaultCartName
	}

	cart := &ShoppingCart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		OwnerEmail:        ownerEmail,
		InvitedEmails:     []string{},
	}
	cart.AddDomainEvent(NewCartCreatedEvent(cart.ID, ownerEmail, name))
	return cart, nil
}

// IsAccessibleBy reports whether the email owns the cart or was invited
func (c *ShoppingCart) IsAccessibleBy(email string) bool {
	if c.OwnerEmail == email {
		return true
	}
	for _, invited := range c.InvitedEmails {
		if invited == email {
			return true
		}
	}
	return false
}

// InviteEmail adds an email to the cart's invite list. Returns false when
// the email was already invited.
func (c *ShoppingCart) InviteEmail(email string) (bool, error) {
	if email == "" {
		return false, shared.NewDomainError("INVALID_EMAIL", "Invitee email cannot be empty")
	}
	for _, invited := range c.InvitedEmails {
		if invited == email {
			return false, nil
		}
	}
	c.InvitedEmails = append(c.InvitedEmails, email)
	c.UpdatedAt = time.Now()
	return true, nil
}

func (c *ShoppingCart) findItemByKey(key string) *CartItem {
	for i := range c.Items {
		if c.Items[i].MergeKey() == key {
			return &c.Items[i]
		}
	}
	return nil
}

// ItemByKey returns the cart item matching the product item and size, or
// nil
func (c *ShoppingCart) ItemByKey(productItemID uuid.UUID, size string) *CartItem {
	return c.findItemByKey(MergeKey(productItemID, size))
}

// IncrementItemQuantity adds to an existing item's quantity
func (c *ShoppingCart) IncrementItemQuantity(itemID uuid.UUID, delta int) error {
	if delta <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	item := c.ItemByID(itemID)
	if item == nil {
		return shared.NewDomainError("CART_ITEM_NOT_FOUND", "Cart item not found")
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	c.UpdatedAt = item.UpdatedAt
	return nil
}

// ItemByID returns the cart item with the given id, or nil
func (c *ShoppingCart) ItemByID(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// PutItem adds a product item to the cart, or replaces the quantity when
// the same product item and size is already present.
func (c *ShoppingCart) PutItem(product acl.ProductItemReference, size string, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	if existing := c.findItemByKey(MergeKey(product.ID(), size)); existing != nil {
		existing.Quantity = quantity
		existing.UpdatedAt = now
		c.UpdatedAt = now
		return existing, nil
	}
	return c.appendItem(product, size, quantity, now), nil
}

// MergeItem adds a product item to the cart, incrementing the quantity when
// the same product item and size is already present. Used by guest cart
// merging, where both carts' quantities are kept.
func (c *ShoppingCart) MergeItem(product acl.ProductItemReference, size string, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	if existing := c.findItemByKey(MergeKey(product.ID(), size)); existing != nil {
		existing.Quantity += quantity
		existing.UpdatedAt = now
		c.UpdatedAt = now
		return existing, nil
	}
	return c.appendItem(product, size, quantity, now), nil
}

func (c *ShoppingCart) appendItem(product acl.ProductItemReference, size string, quantity int, now time.Time) *CartItem {
	item := CartItem{
		ID:            uuid.New(),
		CartID:        c.ID,
		ProductItemID: product.ID(),
		ProductName:   product.Name(),
		Size:          size,
		Quantity:      quantity,
		UnitPrice:     product.Price(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = now
	return &c.Items[len(c.Items)-1]
}

// UpdateItemQuantity sets the quantity of an existing cart item
func (c *ShoppingCart) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	item := c.ItemByID(itemID)
	if item == nil {
		return shared.NewDomainError("CART_ITEM_NOT_FOUND", "Cart item not found")
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	c.UpdatedAt = item.UpdatedAt
	return nil
}

// RemoveItem deletes an item from the cart
func (c *ShoppingCart) RemoveItem(itemID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("CART_ITEM_NOT_FOUND", "Cart item not found")
}

// Touch bumps the cart's update timestamp
func (c *ShoppingCart) Touch() {
	c.UpdatedAt = time.Now()
}
