package order

import (
	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/shared"
)

// OrderCreatedEvent is raised when a new order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
}

func NewOrderCreatedEvent(orderID, userID uuid.UUID) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.created", "Order", orderID),
		OrderID:         orderID,
		UserID:          userID,
	}
}

// OrderStatusChangedEvent is raised when the derived or explicit order
// status transitions
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

func NewOrderStatusChangedEvent(orderID uuid.UUID, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.status_changed", "Order", orderID),
		OrderID:         orderID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderLineStatusChangedEvent is raised when a seller moves one line
// through fulfillment
type OrderLineStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID  `json:"order_id"`
	LineID    uuid.UUID  `json:"line_id"`
	OldStatus LineStatus `json:"old_status"`
	NewStatus LineStatus `json:"new_status"`
}

func NewOrderLineStatusChangedEvent(orderID, lineID uuid.UUID, oldStatus, newStatus LineStatus) *OrderLineStatusChangedEvent {
	return &OrderLineStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.line_status_changed", "Order", orderID),
		OrderID:         orderID,
		LineID:          lineID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
