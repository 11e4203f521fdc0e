package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidInput    = errors.New("invalid product input")
	ErrSlugExists      = errors.New("product slug already exists")
	ErrProductInUse    = errors.New("product is referenced by orders")
)
