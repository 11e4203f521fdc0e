package product

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"emedica-be/internal/utils"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	Rating      string   `json:"rating"`
	NumReviews  int      `json:"numReviews"`
	IsFeatured  bool     `json:"isFeatured"`
	Banner      *string  `json:"banner,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
	Page       int               `json:"page"`
}

func ToResponse(p *Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Category:    p.Category,
		Brand:       p.Brand,
		Description: p.Description,
		Images:      images,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		Rating:      p.Rating.StringFixed(2),
		NumReviews:  p.NumReviews,
		IsFeatured:  p.IsFeatured,
		Banner:      p.Banner,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func ToResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToResponse(&products[i]))
	}
	return out
}

func ToListResponse(res *ListResult) ProductListResponse {
	return ProductListResponse{
		Data:       ToResponses(res.Items),
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Page:       res.Page,
	}
}

// ParseListOptions reads catalog filters from a query string. The value "all"
// disables the query, category, price and rating filters.
func ParseListOptions(q url.Values) (ListOptions, error) {
	opts := ListOptions{
		Query:    filterValue(q.Get("query")),
		Category: filterValue(q.Get("category")),
		Sort:     SortNewest,
		Page:     1,
		Limit:    utils.DefaultPageLimit,
	}

	if price := filterValue(q.Get("price")); price != "" {
		lo, hi, err := parsePriceRange(price)
		if err != nil {
			return ListOptions{}, err
		}
		opts.MinPrice, opts.MaxPrice = &lo, &hi
	}

	if rating := filterValue(q.Get("rating")); rating != "" {
		r, err := strconv.Atoi(rating)
		if err != nil || r < 1 || r > 5 {
			return ListOptions{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
		}
		opts.MinRating = &r
	}

	switch SortOption(q.Get("sort")) {
	case SortLowest:
		opts.Sort = SortLowest
	case SortHighest:
		opts.Sort = SortHighest
	case SortRating:
		opts.Sort = SortRating
	}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		opts.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		opts.Limit = min(v, utils.MaxPageLimit)
	}

	return opts, nil
}

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if v == "all" {
		return ""
	}
	return v
}

func parsePriceRange(s string) (decimal.Decimal, decimal.Decimal, error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: price must look like min-max", ErrInvalidInput)
	}
	minPrice, err := decimal.NewFromString(strings.TrimSpace(lo))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: invalid minimum price", ErrInvalidInput)
	}
	maxPrice, err := decimal.NewFromString(strings.TrimSpace(hi))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: invalid maximum price", ErrInvalidInput)
	}
	if minPrice.GreaterThan(maxPrice) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: minimum price is above maximum", ErrInvalidInput)
	}
	return minPrice, maxPrice, nil
}
