package handler

import (
	"context"
	"fmt"
	"net/http"

	"emedica-be/internal/address"
	"emedica-be/internal/cart"
	"emedica-be/internal/category"
	"emedica-be/internal/order"
	"emedica-be/internal/product"
	"emedica-be/internal/review"
	"emedica-be/internal/user"
	"emedica-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler exposes the services over REST. Every field is required except DB,
// which only the health check uses.
type Handler struct {
	UserSvc     user.Service
	AddressSvc  address.Service
	ProductSvc  product.Service
	CategorySvc category.Service
	CartSvc     cart.Service
	OrderSvc    order.Service
	ReviewSvc   review.Service
	DB          Pinger

	SecureCookies bool
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a uuid", errBadRequest, name)
	}
	return id, nil
}

func uintParam(r *http.Request, name string) (uint, error) {
	id, err := utils.ToUint(chi.URLParam(r, name))
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
	}
	return id, nil
}

func decode(r *http.Request, dst any) error {
	if err := utils.DecodeJSON(r, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
