// Package acl provides Anti-Corruption Layer (ACL) components for the Cart
// bounded context. Cart items reference product items owned by the catalog
// service; the ACL keeps the cart domain's view of a product minimal.
package acl

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/shared"
)

// ProductItemReference is the cart context's local view of a product item:
// just enough to display a cart line and price it.
type ProductItemReference struct {
	id    uuid.UUID
	name  string
	price decimal.Decimal
}

// NewProductItemReference creates a ProductItemReference
func NewProductItemReference(id uuid.UUID, name string, price decimal.Decimal) (ProductItemReference, error) {
	if id == uuid.Nil {
		return ProductItemReference{}, shared.NewDomainError("INVALID_PRODUCT_ITEM_ID", "Product item ID cannot be empty")
	}
	if price.IsNegative() {
		return ProductItemReference{}, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	return ProductItemReference{id: id, name: name, price: price}, nil
}

// ID returns the product item's identifier
func (r ProductItemReference) ID() uuid.UUID {
	return r.id
}

// Name returns the product item's display name
func (r ProductItemReference) Name() string {
	return r.name
}

// Price returns the product item's current unit price
func (r ProductItemReference) Price() decimal.Decimal {
	return r.price
}

// IsEmpty returns true if the reference is empty
func (r ProductItemReference) IsEmpty() bool {
	return r.id == uuid.Nil
}

// ProductCatalog resolves product item references from the catalog service
type ProductCatalog interface {
	FindItemByID(ctx context.Context, id uuid.UUID) (ProductItemReference, error)
}
