package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/cart/acl"
	"github.com/shop/backend/internal/domain/shared"
)

// CartService handles cart CRUD and the guest cart merge at sign-in
type CartService struct {
	cartRepo       cart.Repository
	catalog        acl.ProductCatalog
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, catalog acl.ProductCatalog, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		catalog:  catalog,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateCart creates a cart for a user
func (s *CartService) CreateCart(ctx context.Context, ownerEmail string, req CreateCartRequest) (*CartResponse, error) {
	c, err := cart.NewShoppingCart(ownerEmail, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, c)

	response := ToCartResponse(c)
	return &response, nil
}

// GetCart retrieves a cart with its items
func (s *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}

// ListCartsForUser returns the carts a user owns followed by the carts they
// were invited to
func (s *CartService) ListCartsForUser(ctx context.Context, userEmail string) ([]CartResponse, error) {
	owned, err := s.cartRepo.FindByOwner(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	invited, err := s.cartRepo.FindByInvitee(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	return ToCartResponses(append(owned, invited...)), nil
}

// GetItems retrieves the items of a cart
func (s *CartService) GetItems(ctx context.Context, cartID uuid.UUID) ([]CartItemResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items := make([]CartItemResponse, len(c.Items))
	for i := range c.Items {
		items[i] = ToCartItemResponse(&c.Items[i])
	}
	return items, nil
}

// AddItem puts a product item in a cart. An existing item with the same
// product item and size has its quantity replaced, not incremented.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req AddItemRequest) (*CartItemResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.FindItemByID(ctx, req.ProductItemID)
	if err != nil {
		return nil, err
	}

	item, err := c.PutItem(product, req.Size, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartItemResponse(item)
	return &response, nil
}

// UpdateItemQuantity changes a cart item's quantity
func (s *CartService) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, req UpdateItemQuantityRequest) (*CartItemResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartItemResponse(c.ItemByID(itemID))
	return &response, nil
}

// RemoveItem deletes an item from a cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return err
	}
	if err := c.RemoveItem(itemID); err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, c)
}

// DeleteCart deletes a cart and its items
func (s *CartService) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	if _, err := s.cartRepo.FindByID(ctx, cartID); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, cartID)
}

// InviteToCart adds an email to the cart's invite list
func (s *CartService) InviteToCart(ctx context.Context, cartID uuid.UUID, req InviteToCartRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	added, err := c.InviteEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if added {
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return nil, err
		}
	}

	response := ToCartResponse(c)
	return &response, nil
}

// MergeGuestCarts folds guest carts into the user's default cart and
// returns every cart the user can see. Quantities of colliding items add
// up; new items are priced from the catalog. The merge is idempotent for
// an empty guest cart list.
func (s *CartService) MergeGuestCarts(ctx context.Context, userEmail string, req MergeCartsRequest) ([]CartResponse, error) {
	if len(req.GuestCarts) == 0 {
		return s.ListCartsForUser(ctx, userEmail)
	}

	myCart, err := s.findOrCreateDefaultCart(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	merged := 0
	for _, guestCart := range req.GuestCarts {
		for _, guestItem := range guestCart.Items {
			if guestItem.Quantity <= 0 {
				s.logger.Warn("Skipping guest cart item with non-positive quantity",
					zap.String("product_item_id", guestItem.ProductItemID.String()),
					zap.Int("quantity", guestItem.Quantity))
				continue
			}
			size := guestItem.NormalizedSize()

			if existing := myCart.ItemByKey(guestItem.ProductItemID, size); existing != nil {
				if err := myCart.IncrementItemQuantity(existing.ID, guestItem.Quantity); err != nil {
					return nil, err
				}
			} else {
				product, err := s.catalog.FindItemByID(ctx, guestItem.ProductItemID)
				if err != nil {
					return nil, err
				}
				if _, err := myCart.MergeItem(product, size, guestItem.Quantity); err != nil {
					return nil, err
				}
			}
			merged++
		}
	}

	myCart.Touch()
	myCart.AddDomainEvent(cart.NewGuestCartsMergedEvent(myCart.ID, userEmail, merged))
	if err := s.cartRepo.Save(ctx, myCart); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, myCart)

	s.logger.Info("Guest carts merged",
		zap.String("user_email", userEmail),
		zap.Int("merged_items", merged))
	return s.ListCartsForUser(ctx, userEmail)
}

func (s *CartService) findOrCreateDefaultCart(ctx context.Context, userEmail string) (*cart.ShoppingCart, error) {
	c, err := s.cartRepo.FindByOwnerAndName(ctx, userEmail, cart.DefaultCartName)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err = cart.NewShoppingCart(userEmail, cart.DefaultCartName)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) publishEvents(ctx context.Context, c *cart.ShoppingCart) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range c.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish cart event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	c.ClearDomainEvents()
}
