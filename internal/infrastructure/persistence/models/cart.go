package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/cart"
)

// ShoppingCartModel is the persistence model for the ShoppingCart aggregate.
type ShoppingCartModel struct {
	AggregateModel
	Name          string          `gorm:"type:varchar(100);not null"`
	OwnerEmail    string          `gorm:"type:varchar(255);not null;index"`
	InvitedEmails []string        `gorm:"type:jsonb;serializer:json"`
	Items         []CartItemModel `gorm:"foreignKey:CartID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ShoppingCartModel) TableName() string {
	return "shopping_carts"
}

// ToDomain converts the persistence model to a domain ShoppingCart aggregate.
func (m *ShoppingCartModel) ToDomain() *cart.ShoppingCart {
	c := &cart.ShoppingCart{
		Name:          m.Name,
		OwnerEmail:    m.OwnerEmail,
		InvitedEmails: m.InvitedEmails,
		Items:         make([]cart.CartItem, len(m.Items)),
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	if c.InvitedEmails == nil {
		c.InvitedEmails = []string{}
	}
	for i, item := range m.Items {
		c.Items[i] = *item.ToDomain()
	}
	return c
}

// FromDomain populates the persistence model from a domain ShoppingCart.
func (m *ShoppingCartModel) FromDomain(c *cart.ShoppingCart) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.OwnerEmail = c.OwnerEmail
	m.InvitedEmails = c.InvitedEmails
	m.Items = make([]CartItemModel, len(c.Items))
	for i, item := range c.Items {
		m.Items[i] = *CartItemModelFromDomain(&item)
	}
}

// ShoppingCartModelFromDomain creates a new persistence model from a domain cart.
func ShoppingCartModelFromDomain(c *cart.ShoppingCart) *ShoppingCartModel {
	m := &ShoppingCartModel{}
	m.FromDomain(c)
	return m
}

// CartItemModel is the persistence model for the CartItem entity.
type CartItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	CartID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductItemID uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Size          string          `gorm:"type:varchar(50);not null;default:''"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem entity.
func (m *CartItemModel) ToDomain() *cart.CartItem {
	return &cart.CartItem{
		ID:            m.ID,
		CartID:        m.CartID,
		ProductItemID: m.ProductItemID,
		ProductName:   m.ProductName,
		Size:          m.Size,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CartItemModelFromDomain creates a new persistence model from a domain item.
func CartItemModelFromDomain(item *cart.CartItem) *CartItemModel {
	return &CartItemModel{
		ID:            item.ID,
		CartID:        item.CartID,
		ProductItemID: item.ProductItemID,
		ProductName:   item.ProductName,
		Size:          item.Size,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// CartShareModel is the persistence model for the CartShare aggregate.
type CartShareModel struct {
	AggregateModel
	ShareToken string               `gorm:"type:varchar(64);not null;uniqueIndex"`
	CartID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	OwnerID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	OwnerEmail string               `gorm:"type:varchar(255);not null"`
	Permission cart.SharePermission `gorm:"type:varchar(20);not null"`
	ExpiresAt  time.Time            `gorm:"not null"`
	IsActive   bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CartShareModel) TableName() string {
	return "cart_shares"
}

// ToDomain converts the persistence model to a domain CartShare.
func (m *CartShareModel) ToDomain() *cart.CartShare {
	s := &cart.CartShare{
		ShareToken: m.ShareToken,
		CartID:     m.CartID,
		OwnerID:    m.OwnerID,
		OwnerEmail: m.OwnerEmail,
		Permission: m.Permission,
		ExpiresAt:  m.ExpiresAt,
		Active:     m.IsActive,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain CartShare.
func (m *CartShareModel) FromDomain(s *cart.CartShare) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ShareToken = s.ShareToken
	m.CartID = s.CartID
	m.OwnerID = s.OwnerID
	m.OwnerEmail = s.OwnerEmail
	m.Permission = s.Permission
	m.ExpiresAt = s.ExpiresAt
	m.IsActive = s.Active
}

// CartShareModelFromDomain creates a new persistence model from a domain share.
func CartShareModelFromDomain(s *cart.CartShare) *CartShareModel {
	m := &CartShareModel{}
	m.FromDomain(s)
	return m
}

// CartInvitationModel is the persistence model for the CartInvitation aggregate.
type CartInvitationModel struct {
	AggregateModel
	CartID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	InviterID    uuid.UUID            `gorm:"type:uuid;not null"`
	InviterEmail string               `gorm:"type:varchar(255);not null"`
	InviteeEmail string               `gorm:"type:varchar(255);not null;index"`
	Permission   cart.SharePermission `gorm:"type:varchar(20);not null"`
	InvitedAt    time.Time            `gorm:"not null"`
	ExpiresAt    time.Time            `gorm:"not null"`
	Accepted     bool                 `gorm:"not null;default:false"`
	IsActive     bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CartInvitationModel) TableName() string {
	return "cart_invitations"
}

// ToDomain converts the persistence model to a domain CartInvitation.
func (m *CartInvitationModel) ToDomain() *cart.CartInvitation {
	inv := &cart.CartInvitation{
		CartID:       m.CartID,
		InviterID:    m.InviterID,
		InviterEmail: m.InviterEmail,
		InviteeEmail: m.InviteeEmail,
		Permission:   m.Permission,
		InvitedAt:    m.InvitedAt,
		ExpiresAt:    m.ExpiresAt,
		Accepted:     m.Accepted,
		Active:       m.IsActive,
	}
	m.PopulateAggregateRoot(&inv.BaseAggregateRoot)
	return inv
}

// FromDomain populates the persistence model from a domain CartInvitation.
func (m *CartInvitationModel) FromDomain(inv *cart.CartInvitation) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.CartID = inv.CartID
	m.InviterID = inv.InviterID
	m.InviterEmail = inv.InviterEmail
	m.InviteeEmail = inv.InviteeEmail
	m.Permission = inv.Permission
	m.InvitedAt = inv.InvitedAt
	m.ExpiresAt = inv.ExpiresAt
	m.Accepted = inv.Accepted
	m.IsActive = inv.Active
}

// CartInvitationModelFromDomain creates a new persistence model from a domain invitation.
func CartInvitationModelFromDomain(inv *cart.CartInvitation) *CartInvitationModel {
	m := &CartInvitationModel{}
	m.FromDomain(inv)
	return m
}
