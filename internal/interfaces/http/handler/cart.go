package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/shop/backend/internal/application/cart"
)

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create handles POST /carts
func (h *CartHandler) Create(c *gin.Context) {
	email, err := getUserEmail(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.CreateCart(c.Request.Context(), email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List handles GET /carts and returns the carts the caller owns or was
// invited to
func (h *CartHandler) List(c *gin.Context) {
	email, err := getUserEmail(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	carts, err := h.cartService.ListCartsForUser(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, carts)
}

// GetByID handles GET /carts/:id
func (h *CartHandler) GetByID(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	resp, err := h.cartService.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /carts/:id
func (h *CartHandler) Delete(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	if err := h.cartService.DeleteCart(c.Request.Context(), cartID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetItems handles GET /carts/:id/items
func (h *CartHandler) GetItems(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	items, err := h.cartService.GetItems(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// AddItem handles PUT /carts/:id/items. Adding a product item and size
// already in the cart replaces its quantity.
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateItemQuantity handles PUT /carts/:id/items/:itemId
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	var req cartapp.UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.UpdateItemQuantity(c.Request.Context(), cartID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveItem handles DELETE /carts/:id/items/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid cart item ID format")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), cartID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Invite handles POST /carts/:id/invites
func (h *CartHandler) Invite(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	var req cartapp.InviteToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.cartService.InviteToCart(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Merge handles POST /carts/merge. Called once at sign-in with the guest
// carts held client-side; returns the caller's carts after the merge.
func (h *CartHandler) Merge(c *gin.Context) {
	email, err := getUserEmail(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.MergeCartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	carts, err := h.cartService.MergeGuestCarts(c.Request.Context(), email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, carts)
}
