package category

// Category is a distinct products.category value with its catalog size.
type Category struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"productCount"`
}

// Brand is a distinct products.brand value inside one category.
type Brand struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"productCount"`
}

type ListResult struct {
	Items      []Category
	Total      int64
	TotalPages int
	Page       int
}
