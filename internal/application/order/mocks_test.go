package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/order/acl"
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

// MockUserDirectory is a mock implementation of acl.UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id uuid.UUID) (acl.UserReference, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(acl.UserReference), args.Error(1)
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (acl.UserReference, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(acl.UserReference), args.Error(1)
}

// MockEmailSender is a mock implementation of acl.EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg acl.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
