package order

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

// OrderStatus represents the overall status of a shop order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus parses a string into an OrderStatus, case-insensitively.
// Unrecognized values are rejected instead of being stored as free text.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", "Unrecognized order status: "+s)
	}
	return status, nil
}

// LineStatus represents the fulfillment status of a single order line
type LineStatus string

const (
	LineStatusPending   LineStatus = "pending"
	LineStatusConfirmed LineStatus = "confirmed"
	LineStatusShipped   LineStatus = "shipped"
	LineStatusDelivered LineStatus = "delivered"
	LineStatusReceived  LineStatus = "received"
	LineStatusCancelled LineStatus = "cancelled"
)

// IsValid checks if the status is a valid LineStatus
func (s LineStatus) IsValid() bool {
	switch s {
	case LineStatusPending, LineStatusConfirmed, LineStatusShipped,
		LineStatusDelivered, LineStatusReceived, LineStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of LineStatus
func (s LineStatus) String() string {
	return string(s)
}

// ParseLineStatus parses a string into a LineStatus, case-insensitively
func ParseLineStatus(s string) (LineStatus, error) {
	status := LineStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", "Unrecognized line status: "+s)
	}
	return status, nil
}

// DeriveOrderStatus computes an order's overall status from its lines.
// Precedence, first match wins:
//  1. any line cancelled       -> cancelled
//  2. all lines received       -> received
//  3. any line pending         -> pending
//  4. any line shipped/delivered -> in_progress
//
// When no rule matches (e.g. every line is confirmed) the order status is
// left unchanged and ok is false. This mirrors the behavior the sellers
// currently depend on; mapping an all-confirmed order to an explicit state
// is pending product sign-off.
// An empty line set also derives nothing.
func DeriveOrderStatus(lines []OrderLine) (status OrderStatus, ok bool) {
	if len(lines) == 0 {
		return "", false
	}

	allReceived := true
	anyPending := false
	anyInTransit := false

	for _, line := range lines {
		switch line.Status {
		case LineStatusCancelled:
			return OrderStatusCancelled, true
		case LineStatusReceived:
		case LineStatusPending:
			allReceived = false
			anyPending = true
		case LineStatusShipped, LineStatusDelivered:
			allReceived = false
			anyInTransit = true
		default:
			allReceived = false
		}
	}

	switch {
	case allReceived:
		return OrderStatusReceived, true
	case anyPending:
		return OrderStatusPending, true
	case anyInTransit:
		return OrderStatusInProgress, true
	}
	return "", false
}
