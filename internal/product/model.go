package product

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Category    string
	Brand       string
	Description string
	Images      []string
	Price       decimal.Decimal
	Stock       int
	Rating      decimal.Decimal
	NumReviews  int
	IsFeatured  bool
	Banner      *string
	CreatedAt   time.Time
}

type SortOption string

const (
	SortNewest  SortOption = "newest"
	SortLowest  SortOption = "lowest"
	SortHighest SortOption = "highest"
	SortRating  SortOption = "rating"
)

const FeaturedLimit = 4

type ListOptions struct {
	Query     string
	Category  string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating *int
	Sort      SortOption
	Page      int
	Limit     int
}

type ListResult struct {
	Items      []Product
	Total      int64
	TotalPages int
	Page       int
}

type CreateProductInput struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	IsFeatured  bool            `json:"isFeatured"`
	Banner      *string         `json:"banner"`
}

type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug"`
	Category    *string          `json:"category"`
	Brand       *string          `json:"brand"`
	Description *string          `json:"description"`
	Images      []string         `json:"images"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	IsFeatured  *bool            `json:"isFeatured"`
	Banner      *string          `json:"banner"`
}

func (in CreateProductInput) Validate() error {
	switch {
	case len(strings.TrimSpace(in.Name)) < 3:
		return fmt.Errorf("%w: name must be at least 3 characters", ErrInvalidInput)
	case strings.TrimSpace(in.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case !in.Price.Equal(in.Price.Round(2)):
		return fmt.Errorf("%w: price must have at most two decimal places", ErrInvalidInput)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in UpdateProductInput) Validate() error {
	if !in.HasChanges() {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if in.Name != nil && len(strings.TrimSpace(*in.Name)) < 3 {
		return fmt.Errorf("%w: name must be at least 3 characters", ErrInvalidInput)
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) == "" {
		return fmt.Errorf("%w: slug must not be empty", ErrInvalidInput)
	}
	if in.Price != nil && (in.Price.IsNegative() || !in.Price.Equal(in.Price.Round(2))) {
		return fmt.Errorf("%w: price must be a non-negative amount in cents", ErrInvalidInput)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in UpdateProductInput) HasChanges() bool {
	return in.Name != nil ||
		in.Slug != nil ||
		in.Category != nil ||
		in.Brand != nil ||
		in.Description != nil ||
		in.Images != nil ||
		in.Price != nil ||
		in.Stock != nil ||
		in.IsFeatured != nil ||
		in.Banner != nil
}
