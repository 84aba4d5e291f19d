package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/shared"
)

// Order is the shop order aggregate root. Lines are part of the aggregate;
// their statuses drive the derived order status.
type Order struct {
	shared.BaseAggregateRoot
	UserID           uuid.UUID
	OrderDate        time.Time
	Status           OrderStatus
	OrderTotal       decimal.Decimal
	ShippingAddress  string
	ShippingMethodID *uuid.UUID
	PaymentMethodID  *uuid.UUID
	Lines            []OrderLine
}

// OrderLine is a single purchased product item within an order, fulfilled
// by one seller.
type OrderLine struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductItemID uuid.UUID
	SellerID      uuid.UUID
	ProductName   string
	Size          string
	Quantity      int
	UnitPrice     decimal.Decimal
	Status        LineStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subtotal returns the line's quantity times unit price
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewOrder creates a new pending order for a user
func NewOrder(userID uuid.UUID, shippingAddress string, shippingMethodID, paymentMethodID *uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order must belong to a user")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		OrderDate:         time.Now(),
		Status:            OrderStatusPending,
		OrderTotal:        decimal.Zero,
		ShippingAddress:   shippingAddress,
		ShippingMethodID:  shippingMethodID,
		PaymentMethodID:   paymentMethodID,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order.ID, userID))
	return order, nil
}

// AddLine appends a pending line to the order and rolls its subtotal into
// the order total. Only meaningful before the order is placed.
func (o *Order) AddLine(productItemID, sellerID uuid.UUID, productName, size string, quantity int, unitPrice decimal.Decimal) (*OrderLine, error) {
	if productItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_LINE", "Order line must reference a product item")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_LINE", "Order line must reference a seller")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	line := OrderLine{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ProductItemID: productItemID,
		SellerID:      sellerID,
		ProductName:   productName,
		Size:          size,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Status:        LineStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	o.Lines = append(o.Lines, line)
	o.OrderTotal = o.OrderTotal.Add(line.Subtotal())
	o.UpdatedAt = now
	return &o.Lines[len(o.Lines)-1], nil
}

// Validate checks that the order is in a placeable state
func (o *Order) Validate() error {
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line")
	}
	return nil
}

// SetStatus overrides the order status directly
func (o *Order) SetStatus(status OrderStatus) {
	if status == o.Status {
		return
	}
	old := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o.ID, old, status))
}

// LineByID returns the order's line with the given id, or nil
func (o *Order) LineByID(lineID uuid.UUID) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// SetLineStatus updates the status of a single line within the aggregate
func (o *Order) SetLineStatus(lineID uuid.UUID, status LineStatus) error {
	for i := range o.Lines {
		if o.Lines[i].ID != lineID {
			continue
		}
		old := o.Lines[i].Status
		if old == status {
			return nil
		}
		o.Lines[i].Status = status
		o.Lines[i].UpdatedAt = time.Now()
		o.UpdatedAt = o.Lines[i].UpdatedAt
		o.AddDomainEvent(NewOrderLineStatusChangedEvent(o.ID, lineID, old, status))
		return nil
	}
	return shared.NewDomainError("ORDER_LINE_NOT_FOUND", "Order line not found in order")
}

// RecomputeStatus derives the order status from its lines and applies it
// when a rule matches. Returns true when the status actually changed.
func (o *Order) RecomputeStatus() bool {
	derived, ok := DeriveOrderStatus(o.Lines)
	if !ok || derived == o.Status {
		return false
	}
	o.SetStatus(derived)
	return true
}

// LinesBySeller returns the order's lines belonging to one seller
func (o *Order) LinesBySeller(sellerID uuid.UUID) []OrderLine {
	var out []OrderLine
	for _, line := range o.Lines {
		if line.SellerID == sellerID {
			out = append(out, line)
		}
	}
	return out
}
