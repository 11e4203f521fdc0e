package user

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrEmailExists          = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidInput         = errors.New("invalid user input")
	ErrUserHasOrders        = errors.New("user has orders and cannot be deleted")
)
