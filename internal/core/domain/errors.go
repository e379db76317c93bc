// internal/core/domain/errors.go
package domain

import "errors"

// Business errors surfaced by the store service. The transport layer maps
// these to response codes; anything else is an infrastructure failure and is
// reported upward verbatim.
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
