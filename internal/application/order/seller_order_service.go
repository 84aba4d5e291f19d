package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
)

// SellerOrderService gives sellers a cross-order view of the lines they
// fulfill and drives the derived order status as lines progress
type SellerOrderService struct {
	orderRepo      order.Repository
	lineRepo       order.LineRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSellerOrderService creates a new SellerOrderService
func NewSellerOrderService(orderRepo order.Repository, lineRepo order.LineRepository, logger *zap.Logger) *SellerOrderService {
	return &SellerOrderService{
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SellerOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetOrdersBySeller lists every order containing at least one of the
// seller's lines, restricted to the seller's view
func (s *SellerOrderService) GetOrdersBySeller(ctx context.Context, sellerID uuid.UUID) ([]SellerOrderResponse, error) {
	orderIDs, err := s.lineRepo.DistinctOrderIDsBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return []SellerOrderResponse{}, nil
	}

	orders, err := s.orderRepo.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]SellerOrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToSellerOrderResponse(o, sellerID)
	}
	return responses, nil
}

// GetLinesBySeller lists the seller's lines across all orders
func (s *SellerOrderService) GetLinesBySeller(ctx context.Context, sellerID uuid.UUID, filter OrderListFilter) ([]OrderLineResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	lines, err := s.lineRepo.FindBySeller(ctx, sellerID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToOrderLineResponses(lines), nil
}

// GetLinesByOrderAndSeller lists the seller's lines within one order
func (s *SellerOrderService) GetLinesByOrderAndSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]OrderLineResponse, error) {
	lines, err := s.lineRepo.FindByOrderAndSeller(ctx, orderID, sellerID)
	if err != nil {
		return nil, err
	}
	return ToOrderLineResponses(lines), nil
}

// UpdateLineStatus moves one of the seller's lines through fulfillment and
// recomputes the order's derived status. Sellers can only touch their own
// lines.
func (s *SellerOrderService) UpdateLineStatus(ctx context.Context, lineID, sellerID uuid.UUID, req UpdateLineStatusRequest) (*OrderLineResponse, error) {
	status, err := order.ParseLineStatus(req.Status)
	if err != nil {
		return nil, err
	}

	line, err := s.lineRepo.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line.SellerID != sellerID {
		return nil, shared.ErrForbidden
	}

	o, err := s.orderRepo.FindByID(ctx, line.OrderID)
	if err != nil {
		return nil, err
	}

	if err := o.SetLineStatus(lineID, status); err != nil {
		return nil, err
	}
	changed := o.RecomputeStatus()

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("Order status recomputed",
			zap.String("order_id", o.ID.String()),
			zap.String("status", o.Status.String()))
	}
	s.publishEvents(ctx, o)

	response := ToOrderLineResponse(o.LineByID(lineID))
	return &response, nil
}

// CheckAndUpdateOrderStatus recomputes an order's derived status from its
// current lines, persisting only when a rule matched and the status moved
func (s *SellerOrderService) CheckAndUpdateOrderStatus(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.RecomputeStatus() {
		if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, o)
	}

	response := ToOrderResponse(o)
	return &response, nil
}

func (s *SellerOrderService) publishEvents(ctx context.Context, o *order.Order) {
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
