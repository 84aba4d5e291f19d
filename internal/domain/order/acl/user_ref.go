// Package acl provides Anti-Corruption Layer (ACL) components for the Order
// bounded context. Orders reference users owned by the account service;
// the ACL keeps the order domain free of that service's representation.
package acl

import (
	"context"

	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/shared"
)

// UserReference is the order context's local view of a user: the minimum
// needed to attribute an order and notify its owner.
type UserReference struct {
	id    uuid.UUID
	email string
	name  string
}

// NewUserReference creates a UserReference. The email may be empty when the
// account service withholds it; notification is then skipped.
func NewUserReference(id uuid.UUID, email, name string) (UserReference, error) {
	if id == uuid.Nil {
		return UserReference{}, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	return UserReference{id: id, email: email, name: name}, nil
}

// ID returns the user's identifier
func (r UserReference) ID() uuid.UUID {
	return r.id
}

// Email returns the user's email address, possibly empty
func (r UserReference) Email() string {
	return r.email
}

// Name returns the user's display name
func (r UserReference) Name() string {
	return r.name
}

// HasEmail reports whether the user can be emailed
func (r UserReference) HasEmail() bool {
	return r.email != ""
}

// UserDirectory resolves user references from the account service
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (UserReference, error)
	FindByEmail(ctx context.Context, email string) (UserReference, error)
}

// EmailMessage is a plain-text notification email
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers notification emails through the messaging service.
// Callers treat delivery as best effort.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}
