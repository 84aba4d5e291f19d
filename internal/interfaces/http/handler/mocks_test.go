package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shop/backend/internal/domain/cart"
	cartacl "github.com/shop/backend/internal/domain/cart/acl"
	"github.com/shop/backend/internal/domain/order"
	orderacl "github.com/shop/backend/internal/domain/order/acl"
	"github.com/shop/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockOrderLineRepository is a mock implementation of order.LineRepository
type MockOrderLineRepository struct {
	mock.Mock
}

func (m *MockOrderLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.OrderLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]order.OrderLine, error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) FindByOrderAndSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]order.OrderLine, error) {
	args := m.Called(ctx, orderID, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) DistinctOrderIDsBySeller(ctx context.Context, sellerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.ShoppingCart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*cart.ShoppingCart, error) {
	args := m.Called(ctx, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) FindByInvitee(ctx context.Context, email string) ([]*cart.ShoppingCart, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) FindByOwnerAndName(ctx context.Context, ownerEmail, name string) (*cart.ShoppingCart, error) {
	args := m.Called(ctx, ownerEmail, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.ShoppingCart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockShareRepository is a mock implementation of cart.ShareRepository
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartShare, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartShare), args.Error(1)
}

func (m *MockShareRepository) FindActiveByToken(ctx context.Context, token string) (*cart.CartShare, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartShare), args.Error(1)
}

func (m *MockShareRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*cart.CartShare, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartShare), args.Error(1)
}

func (m *MockShareRepository) FindByCart(ctx context.Context, cartID uuid.UUID) ([]*cart.CartShare, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartShare), args.Error(1)
}

func (m *MockShareRepository) Save(ctx context.Context, share *cart.CartShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

// MockInvitationRepository is a mock implementation of cart.InvitationRepository
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartInvitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartInvitation), args.Error(1)
}

func (m *MockInvitationRepository) FindOpenByInvitee(ctx context.Context, inviteeEmail string) ([]*cart.CartInvitation, error) {
	args := m.Called(ctx, inviteeEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartInvitation), args.Error(1)
}

func (m *MockInvitationRepository) Save(ctx context.Context, invitation *cart.CartInvitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

// MockUserDirectory is a mock implementation of the user directory port
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id uuid.UUID) (orderacl.UserReference, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(orderacl.UserReference), args.Error(1)
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (orderacl.UserReference, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(orderacl.UserReference), args.Error(1)
}

// MockEmailSender is a mock implementation of the email sender port
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg orderacl.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockProductCatalog is a mock implementation of the product catalog port
type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) FindItemByID(ctx context.Context, id uuid.UUID) (cartacl.ProductItemReference, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(cartacl.ProductItemReference), args.Error(1)
}
