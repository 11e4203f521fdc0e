package address

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrUserNotFound         = errors.New("user not found")
	ErrAddressNotFound      = errors.New("shipping address not set")
	ErrInvalidAddress       = errors.New("invalid shipping address")
)
