package user

import (
	"time"

	"emedica-be/internal/address"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

const (
	PaymentMethodPayPal         = "PayPal"
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "CashOnDelivery"
)

var PaymentMethods = []string{
	PaymentMethodPayPal,
	PaymentMethodStripe,
	PaymentMethodCashOnDelivery,
}

type User struct {
	ID            uint
	Name          string
	Email         string
	Password      string
	Role          Role
	Address       *address.ShippingAddress
	PaymentMethod *string
	CreatedAt     time.Time
}

type SignUpInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type UpdatePaymentMethodInput struct {
	Type string `json:"type"`
}
