package user

import (
	"time"

	"emedica-be/internal/address"
)

type UserResponse struct {
	ID            uint                     `json:"id"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	Role          Role                     `json:"role"`
	Address       *address.ShippingAddress `json:"address"`
	PaymentMethod *string                  `json:"paymentMethod"`
	CreatedAt     string                   `json:"createdAt"`
}

type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
	Page       int            `json:"page"`
}

// ToResponse never exposes the password hash.
func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Address:       u.Address,
		PaymentMethod: u.PaymentMethod,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

func ToListResponse(users []User, total int64, totalPages, page int) UserListResponse {
	data := make([]UserResponse, 0, len(users))
	for i := range users {
		data = append(data, ToResponse(&users[i]))
	}
	return UserListResponse{Data: data, Total: total, TotalPages: totalPages, Page: page}
}
