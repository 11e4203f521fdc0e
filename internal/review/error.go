package review

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrReviewNotFound       = errors.New("review not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidInput         = errors.New("invalid review input")
)
