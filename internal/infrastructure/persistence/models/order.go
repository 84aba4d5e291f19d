package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	OrderDate        time.Time         `gorm:"not null;index"`
	Status           order.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	OrderTotal       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingAddress  string            `gorm:"type:varchar(500);not null"`
	ShippingMethodID *uuid.UUID        `gorm:"type:uuid"`
	PaymentMethodID  *uuid.UUID        `gorm:"type:uuid"`
	Lines            []OrderLineModel  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		UserID:           m.UserID,
		OrderDate:        m.OrderDate,
		Status:           m.Status,
		OrderTotal:       m.OrderTotal,
		ShippingAddress:  m.ShippingAddress,
		ShippingMethodID: m.ShippingMethodID,
		PaymentMethodID:  m.PaymentMethodID,
		Lines:            make([]order.OrderLine, len(m.Lines)),
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)
	for i, line := range m.Lines {
		o.Lines[i] = *line.ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.UserID = o.UserID
	m.OrderDate = o.OrderDate
	m.Status = o.Status
	m.OrderTotal = o.OrderTotal
	m.ShippingAddress = o.ShippingAddress
	m.ShippingMethodID = o.ShippingMethodID
	m.PaymentMethodID = o.PaymentMethodID
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i, line := range o.Lines {
		m.Lines[i] = *OrderLineModelFromDomain(&line)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for the OrderLine entity.
type OrderLineModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductItemID uuid.UUID        `gorm:"type:uuid;not null"`
	SellerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductName   string           `gorm:"type:varchar(200);not null"`
	Size          string           `gorm:"type:varchar(50);not null;default:''"`
	Quantity      int              `gorm:"not null"`
	UnitPrice     decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Status        order.LineStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine entity.
func (m *OrderLineModel) ToDomain() *order.OrderLine {
	return &order.OrderLine{
		ID:            m.ID,
		OrderID:       m.OrderID,
		ProductItemID: m.ProductItemID,
		SellerID:      m.SellerID,
		ProductName:   m.ProductName,
		Size:          m.Size,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// OrderLineModelFromDomain creates a new persistence model from a domain OrderLine.
func OrderLineModelFromDomain(line *order.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		ID:            line.ID,
		OrderID:       line.OrderID,
		ProductItemID: line.ProductItemID,
		SellerID:      line.SellerID,
		ProductName:   line.ProductName,
		Size:          line.Size,
		Quantity:      line.Quantity,
		UnitPrice:     line.UnitPrice,
		Status:        line.Status,
		CreatedAt:     line.CreatedAt,
		UpdatedAt:     line.UpdatedAt,
	}
}
