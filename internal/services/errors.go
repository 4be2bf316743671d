package services

import "errors"

// Failure taxonomy surfaced by the services. The HTTP layer translates these
// to status codes; anything not matched here is treated as a persistence
// failure and reported generically.
var (
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cannot checkout with an empty cart")

	// ErrOrderNotCreated is returned when the order store reports success
	// but hands back an order without an identity.
	ErrOrderNotCreated = errors.New("order was not created")
)
