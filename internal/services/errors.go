package services

import "errors"

var (
	ErrBadCreds = errors.New("invalid username or password")
	ErrBlocked  = errors.New("account blocked, contact admin")

	// ErrUnauthorized: the actor's role does not permit the operation.
	ErrUnauthorized = errors.New("operation not permitted for this role")

	// ErrInvalidTransition: the order is not in a state the operation
	// accepts. The order is left untouched.
	ErrInvalidTransition = errors.New("order status does not allow this operation")

	// ErrMissingField: a required field was absent or invalid on a
	// mutating call. Nothing was applied.
	ErrMissingField = errors.New("missing or invalid required field")

	ErrCartEmpty = errors.New("cart is empty")
	ErrNotFound  = errors.New("not found")
)
