package cart

import "errors"

var (
	// -- Ownership --
	ErrMissingOwner = errors.New("cart owner is missing")

	// -- Validation & Input --
	ErrInvalidInput = errors.New("invalid cart input")

	// -- Resource State --
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
