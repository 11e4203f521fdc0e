package order

import (
	"time"

	"emedica-be/internal/address"
)

type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Quantity  int    `json:"qty"`
	Price     string `json:"price"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	UserID          uint                    `json:"userId"`
	UserName        string                  `json:"userName,omitempty"`
	Items           []OrderItemResponse     `json:"orderItems"`
	ShippingAddress address.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	ItemsPrice      string                  `json:"itemsPrice"`
	ShippingPrice   string                  `json:"shippingPrice"`
	TaxPrice        string                  `json:"taxPrice"`
	TotalPrice      string                  `json:"totalPrice"`
	IsPaid          bool                    `json:"isPaid"`
	PaidAt          *string                 `json:"paidAt"`
	PaymentResult   *PaymentResult          `json:"paymentResult,omitempty"`
	IsDelivered     bool                    `json:"isDelivered"`
	DeliveredAt     *string                 `json:"deliveredAt"`
	CreatedAt       string                  `json:"createdAt"`
}

type OrderListResponse struct {
	Data       []OrderResponse `json:"data"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
	Page       int             `json:"page"`
}

func ToResponse(o *Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		UserID:          o.UserID,
		UserName:        o.UserName,
		Items:           make([]OrderItemResponse, 0, len(o.Items)),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		ItemsPrice:      o.Prices.ItemsPrice.StringFixed(2),
		ShippingPrice:   o.Prices.ShippingPrice.StringFixed(2),
		TaxPrice:        o.Prices.TaxPrice.StringFixed(2),
		TotalPrice:      o.Prices.TotalPrice.StringFixed(2),
		IsPaid:          o.IsPaid,
		PaidAt:          formatTime(o.PaidAt),
		PaymentResult:   o.PaymentResult,
		IsDelivered:     o.IsDelivered,
		DeliveredAt:     formatTime(o.DeliveredAt),
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
	}

	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
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

func ToListResponse(res *ListResult) OrderListResponse {
	data := make([]OrderResponse, 0, len(res.Items))
	for i := range res.Items {
		data = append(data, ToResponse(&res.Items[i]))
	}
	return OrderListResponse{
		Data:       data,
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Page:       res.Page,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
