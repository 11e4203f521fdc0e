package cart

import "github.com/google/uuid"

type CartItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Quantity  int    `json:"qty"`
	Price     string `json:"price"`
}

type CartResponse struct {
	ID            *string            `json:"id"`
	Items         []CartItemResponse `json:"items"`
	ItemsPrice    string             `json:"itemsPrice"`
	ShippingPrice string             `json:"shippingPrice"`
	TaxPrice      string             `json:"taxPrice"`
	TotalPrice    string             `json:"totalPrice"`
}

func ToResponse(c *Cart) CartResponse {
	resp := CartResponse{
		Items:         make([]CartItemResponse, 0, len(c.Items)),
		ItemsPrice:    c.Prices.ItemsPrice.StringFixed(2),
		ShippingPrice: c.Prices.ShippingPrice.StringFixed(2),
		TaxPrice:      c.Prices.TaxPrice.StringFixed(2),
		TotalPrice:    c.Prices.TotalPrice.StringFixed(2),
	}
	if c.ID != uuid.Nil {
		id := c.ID.String()
		resp.ID = &id
	}

	for _, it := range c.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Slug:      it.Slug,
			Image:     it.Image,
			Quantity:  it.Quantity,
			Price:     it.Price.StringFixed(2),
		})
	}
	return resp
}
