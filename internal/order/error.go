package order

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrForbidden            = errors.New("order belongs to another user")

	// -- Checkout --
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingAddress       = errors.New("shipping address is missing")
	ErrMissingPaymentMethod = errors.New("payment method is missing")

	// -- Resource State --
	ErrOrderNotFound       = errors.New("order not found")
	ErrAlreadyPaid         = errors.New("order is already paid")
	ErrAlreadyDelivered    = errors.New("order is already delivered")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrPaymentMismatch     = errors.New("captured payment does not match order total")

	// -- Validation & Input --
	ErrInvalidInput = errors.New("invalid order input")
)
