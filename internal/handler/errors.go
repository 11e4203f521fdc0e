package handler

import (
	"errors"
	"net/http"

	"emedica-be/internal/address"
	"emedica-be/internal/cart"
	"emedica-be/internal/category"
	"emedica-be/internal/logger"
	"emedica-be/internal/order"
	"emedica-be/internal/payment"
	"emedica-be/internal/pricing"
	"emedica-be/internal/product"
	"emedica-be/internal/review"
	"emedica-be/internal/user"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

type statusRule struct {
	target error
	status int
}

// First match wins. Client errors expose err.Error(); everything else gets a
// generic message.
var statusRules = []statusRule{
	{order.ErrOrderNotFound, http.StatusNotFound},
	{product.ErrProductNotFound, http.StatusNotFound},
	{cart.ErrProductNotFound, http.StatusNotFound},
	{cart.ErrCartNotFound, http.StatusNotFound},
	{cart.ErrCartItemNotFound, http.StatusNotFound},
	{category.ErrCategoryNotFound, http.StatusNotFound},
	{review.ErrReviewNotFound, http.StatusNotFound},
	{review.ErrProductNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},
	{address.ErrUserNotFound, http.StatusNotFound},
	{address.ErrAddressNotFound, http.StatusNotFound},

	{cart.ErrInsufficientStock, http.StatusConflict},
	{order.ErrInsufficientStock, http.StatusConflict},
	{order.ErrAlreadyPaid, http.StatusConflict},
	{order.ErrAlreadyDelivered, http.StatusConflict},
	{order.ErrPaymentMismatch, http.StatusConflict},
	{user.ErrEmailExists, http.StatusConflict},
	{user.ErrUserHasOrders, http.StatusConflict},
	{product.ErrSlugExists, http.StatusConflict},
	{product.ErrProductInUse, http.StatusConflict},

	{order.ErrEmptyCart, http.StatusBadRequest},
	{order.ErrMissingAddress, http.StatusBadRequest},
	{order.ErrMissingPaymentMethod, http.StatusBadRequest},
	{order.ErrInvalidInput, http.StatusBadRequest},
	{cart.ErrInvalidInput, http.StatusBadRequest},
	{product.ErrInvalidInput, http.StatusBadRequest},
	{review.ErrInvalidInput, http.StatusBadRequest},
	{category.ErrInvalidInput, http.StatusBadRequest},
	{user.ErrInvalidInput, http.StatusBadRequest},
	{address.ErrInvalidAddress, http.StatusBadRequest},
	{utils.ErrEmptyBody, http.StatusBadRequest},
	{errBadRequest, http.StatusBadRequest},

	{pricing.ErrComputation, http.StatusUnprocessableEntity},

	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{user.ErrUserNotAuthenticated, http.StatusUnauthorized},
	{address.ErrUserNotAuthenticated, http.StatusUnauthorized},
	{review.ErrUserNotAuthenticated, http.StatusUnauthorized},
	{order.ErrUserNotAuthenticated, http.StatusUnauthorized},
	{cart.ErrMissingOwner, http.StatusUnauthorized},

	{order.ErrForbidden, http.StatusForbidden},

	{order.ErrPaymentNotCompleted, http.StatusPaymentRequired},
	{payment.ErrGateway, http.StatusBadGateway},
}

func statusFor(err error) int {
	for _, rule := range statusRules {
		if errors.Is(err, rule.target) {
			return rule.status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps a domain error to its HTTP status and writes {"error": msg}.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	switch {
	case status >= http.StatusInternalServerError:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
		if status == http.StatusBadGateway {
			utils.WriteJSONError(w, payment.ErrGateway.Error(), status)
			return
		}
		utils.WriteJSONError(w, "internal server error", status)
	default:
		utils.WriteJSONError(w, err.Error(), status)
	}
}
