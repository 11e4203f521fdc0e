package handler

import (
	"net/http"

	"emedica-be/internal/cart"
	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.CartSvc.GetCart(r.Context(), cart.OwnerFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart.ToResponse(c))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var input cart.AddItemInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.CartSvc.AddItem(r.Context(), cart.OwnerFromContext(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromCtx(r.Context()).Info("cart item added",
		zap.String("product_id", input.ProductID.String()),
		zap.Int("quantity", input.Quantity),
	)
	utils.WriteJSON(w, http.StatusOK, cart.ToResponse(c))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuidParam(r, "productId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.CartSvc.RemoveItem(r.Context(), cart.OwnerFromContext(r.Context()), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart.ToResponse(c))
}
