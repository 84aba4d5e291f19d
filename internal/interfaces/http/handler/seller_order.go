package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/shop/backend/internal/application/order"
)

// SellerOrderHandler handles the seller's view of orders: the orders that
// contain lines they fulfill, and the status of those lines.
type SellerOrderHandler struct {
	BaseHandler
	sellerService *orderapp.SellerOrderService
}

// NewSellerOrderHandler creates a new SellerOrderHandler
func NewSellerOrderHandler(sellerService *orderapp.SellerOrderService) *SellerOrderHandler {
	return &SellerOrderHandler{sellerService: sellerService}
}

// ListOrders handles GET /seller/orders
func (h *SellerOrderHandler) ListOrders(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Forbidden(c, "Seller account required")
		return
	}

	orders, err := h.sellerService.GetOrdersBySeller(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// ListLines handles GET /seller/order-lines
func (h *SellerOrderHandler) ListLines(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Forbidden(c, "Seller account required")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines, err := h.sellerService.GetLinesBySeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

// ListOrderLines handles GET /seller/orders/:id/lines
func (h *SellerOrderHandler) ListOrderLines(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Forbidden(c, "Seller account required")
		return
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	lines, err := h.sellerService.GetLinesByOrderAndSeller(c.Request.Context(), orderID, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

// UpdateLineStatus handles PUT /seller/order-lines/:id/status
func (h *SellerOrderHandler) UpdateLineStatus(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Forbidden(c, "Seller account required")
		return
	}

	lineID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order line ID format")
		return
	}

	var req orderapp.UpdateLineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sellerService.UpdateLineStatus(c.Request.Context(), lineID, sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CheckOrderStatus handles PUT /seller/orders/:id/check-status
func (h *SellerOrderHandler) CheckOrderStatus(c *gin.Context) {
	if _, err := getSellerID(c); err != nil {
		h.Forbidden(c, "Seller account required")
		return
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.sellerService.CheckAndUpdateOrderStatus(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
