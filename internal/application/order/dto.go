package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/order"
)

// ==================== Order DTOs ====================

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	ShippingAddress  string                 `json:"shipping_address" binding:"required,min=1,max=500"`
	ShippingMethodID *uuid.UUID             `json:"shipping_method_id"`
	PaymentMethodID  *uuid.UUID             `json:"payment_method_id"`
	Lines            []CreateOrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

// CreateOrderLineInput represents one line in the create order request
type CreateOrderLineInput struct {
	ProductItemID uuid.UUID       `json:"product_item_id" binding:"required"`
	SellerID      uuid.UUID       `json:"seller_id" binding:"required"`
	ProductName   string          `json:"product_name" binding:"required,min=1,max=200"`
	Size          string          `json:"size" binding:"max=50"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateLineStatusRequest represents a seller moving a line through
// fulfillment
type UpdateLineStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatusRequest represents a direct order status override
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter represents pagination for order listings
type OrderListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"user_id"`
	OrderDate        time.Time           `json:"order_date"`
	Status           string              `json:"status"`
	OrderTotal       decimal.Decimal     `json:"order_total"`
	ShippingAddress  string              `json:"shipping_address"`
	ShippingMethodID *uuid.UUID          `json:"shipping_method_id,omitempty"`
	PaymentMethodID  *uuid.UUID          `json:"payment_method_id,omitempty"`
	Lines            []OrderLineResponse `json:"lines"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Version          int                 `json:"version"`
}

// OrderLineResponse represents a single order line in API responses
type OrderLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"order_id"`
	ProductItemID uuid.UUID       `json:"product_item_id"`
	SellerID      uuid.UUID       `json:"seller_id"`
	ProductName   string          `json:"product_name"`
	Size          string          `json:"size,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SellerOrderResponse represents an order restricted to one seller's view:
// the order header plus only that seller's lines
type SellerOrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	UserID     uuid.UUID           `json:"user_id"`
	OrderDate  time.Time           `json:"order_date"`
	Status     string              `json:"status"`
	Lines      []OrderLineResponse `json:"lines"`
}

// ==================== Mappers ====================

// ToOrderLineResponse converts a domain order line to a response DTO
func ToOrderLineResponse(line *order.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ID:            line.ID,
		OrderID:       line.OrderID,
		ProductItemID: line.ProductItemID,
		SellerID:      line.SellerID,
		ProductName:   line.ProductName,
		Size:          line.Size,
		Quantity:      line.Quantity,
		UnitPrice:     line.UnitPrice,
		Subtotal:      line.Subtotal(),
		Status:        line.Status.String(),
		CreatedAt:     line.CreatedAt,
		UpdatedAt:     line.UpdatedAt,
	}
}

// ToOrderLineResponses converts a slice of domain order lines
func ToOrderLineResponses(lines []order.OrderLine) []OrderLineResponse {
	out := make([]OrderLineResponse, len(lines))
	for i := range lines {
		out[i] = ToOrderLineResponse(&lines[i])
	}
	return out
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		UserID:           o.UserID,
		OrderDate:        o.OrderDate,
		Status:           o.Status.String(),
		OrderTotal:       o.OrderTotal,
		ShippingAddress:  o.ShippingAddress,
		ShippingMethodID: o.ShippingMethodID,
		PaymentMethodID:  o.PaymentMethodID,
		Lines:            ToOrderLineResponses(o.Lines),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Version:          o.Version,
	}
}

// ToSellerOrderResponse converts an order to one seller's view of it
func ToSellerOrderResponse(o *order.Order, sellerID uuid.UUID) SellerOrderResponse {
	return SellerOrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		OrderDate: o.OrderDate,
		Status:    o.Status.String(),
		Lines:     ToOrderLineResponses(o.LinesBySeller(sellerID)),
	}
}
