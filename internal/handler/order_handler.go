package handler

import (
	"net/http"

	"emedica-be/internal/order"
	"emedica-be/internal/utils"
)

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, order.ErrUserNotAuthenticated)
		return
	}

	o, err := h.OrderSvc.CreateOrder(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, order.ToResponse(o))
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)

	res, err := h.OrderSvc.ListMine(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order.ToListResponse(res))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)

	res, err := h.OrderSvc.ListAll(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order.ToListResponse(res))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.OrderSvc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order.ToResponse(o))
}

// PayOrder records a payment confirmed out of band by an admin.
func (h *Handler) PayOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var result order.PaymentResult
	if err := decode(r, &result); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.OrderSvc.MarkPaid(r.Context(), id, result)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order.ToResponse(o))
}

func (h *Handler) PayOrderCOD(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.OrderSvc.MarkPaidCOD(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order.ToResponse(o))
}

func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	intent, err := h.OrderSvc.CreatePaymentIntent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, intent)
}

func (h *Handler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input order.CapturePaymentInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.OrderSvc.CapturePayment(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order.ToResponse(o))
}

func (h *Handler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.OrderSvc.MarkDelivered(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order.ToResponse(o))
}
