package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/cart/acl"
	orderacl "github.com/shop/backend/internal/domain/order/acl"
)

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

// MockInvitationRepository is a mock implementation of
// cart.InvitationRepository
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

// MockProductCatalog is a mock implementation of acl.ProductCatalog
type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) FindItemByID(ctx context.Context, id uuid.UUID) (acl.ProductItemReference, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(acl.ProductItemReference), args.Error(1)
}

// MockEmailSender is a mock implementation of the email sender port
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg orderacl.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockShareCache is a mock implementation of ShareCache
type MockShareCache struct {
	mock.Mock
}

func (m *MockShareCache) Get(ctx context.Context, token string) (*cart.CartShare, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartShare), args.Error(1)
}

func (m *MockShareCache) Set(ctx context.Context, share *cart.CartShare) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockShareCache) Invalidate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
