// Package services holds the shop's operations. Each Shop method runs in
// exactly one unit of work; package-level functions such as AssembleTicket
// take the unit of work explicitly so they compose inside one.
package services

import (
	"errors"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/store"
)

// CredentialIssuer mints the bearer token returned by Login.
type CredentialIssuer interface {
	IssueCredential(customerID uint) (string, error)
}

type Shop struct {
	store *store.Store
	auth  CredentialIssuer
}

func NewShop(s *store.Store, auth CredentialIssuer) *Shop {
	return &Shop{store: s, auth: auth}
}

// notFound maps store.ErrNotFound to a NotFoundError for entity and passes
// any other error through.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, store.ErrNotFound) {
		return &apperrors.NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// conflict maps store.ErrDuplicate to a ConflictError for field.
func conflict(err error, field, value string) error {
	if errors.Is(err, store.ErrDuplicate) {
		return &apperrors.ConflictError{Field: field, Value: value}
	}
	return err
}
