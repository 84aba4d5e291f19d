package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/order/acl"
	"github.com/shop/backend/internal/domain/shared"
)

// OrderService handles buyer-facing order operations
type OrderService struct {
	orderRepo      order.Repository
	users          acl.UserDirectory
	email          acl.EmailSender
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, users acl.UserDirectory, email acl.EmailSender, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		users:     users,
		email:     email,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places a new order for a user and notifies them by email.
// Notification failures never fail the order.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	o, err := order.NewOrder(userID, req.ShippingAddress, req.ShippingMethodID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		if _, err := o.AddLine(line.ProductItemID, line.SellerID, line.ProductName, line.Size, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)
	s.notifyOrderPlaced(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListByUser retrieves a user's orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "order_date"
	domainFilter.OrderDir = "desc"

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses, total, nil
}

// GetLines retrieves the lines of an order
func (s *OrderService) GetLines(ctx context.Context, orderID uuid.UUID) ([]OrderLineResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderLineResponses(o.Lines), nil
}

// UpdateStatus overrides an order's status directly
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	status, err := order.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.SetStatus(status)
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)
	response := ToOrderResponse(o)
	return &response, nil
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	o.ClearDomainEvents()
}

func (s *OrderService) notifyOrderPlaced(ctx context.Context, o *order.Order) {
	user, err := s.users.FindByID(ctx, o.UserID)
	if err != nil {
		s.logger.Warn("Could not resolve user for order confirmation",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
		return
	}
	if !user.HasEmail() {
		return
	}

	msg := acl.EmailMessage{
		To:      user.Email(),
		Subject: "Your order has been placed",
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour order placed on %s has been received and is now pending.\n\nOrder total: %s\n\nBest regards,\nYour Shopping App",
			user.Name(),
			o.OrderDate.Format("2006-01-02 15:04"),
			o.OrderTotal.StringFixed(2),
		),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("Failed to send order confirmation email",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
}
