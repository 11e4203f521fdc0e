package handler

import (
	"net/http"
	"time"

	"emedica-be/internal/address"
	"emedica-be/internal/auth"
	"emedica-be/internal/logger"
	"emedica-be/internal/user"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

type signInResponse struct {
	User         user.UserResponse `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	ExpiresAt    string            `json:"expiresAt"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input user.SignUpInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserSvc.SignUp(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, user.ToResponse(u))
}

// SignIn issues the token pair as cookies and in the body, then folds the
// caller's anonymous cart into the user's cart. A failed merge does not fail
// the sign-in.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx).With(zap.String("layer", "handler"), zap.String("method", "SignIn"))

	var input user.SignInInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	u, tokens, err := h.UserSvc.SignIn(ctx, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if token := utils.GetSessionTokenFromContext(ctx); token != "" {
		if err := h.CartSvc.MergeSessionCart(ctx, u.ID, token); err != nil {
			log.Warn("session cart merge failed", zap.Uint("user_id", u.ID), zap.Error(err))
		}
	}

	h.setTokenCookies(w, tokens)
	utils.WriteJSON(w, http.StatusOK, signInResponse{
		User:         user.ToResponse(u),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *Handler) setTokenCookies(w http.ResponseWriter, tokens auth.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		Expires:  tokens.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     auth.RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, user.ErrUserNotAuthenticated)
		return
	}

	u, err := h.UserSvc.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user.ToResponse(u))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r)

	users, total, err := h.UserSvc.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user.ToListResponse(users, total, utils.TotalPages(total, limit), page))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user.ToResponse(u))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input user.UpdateUserInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserSvc.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user.ToResponse(u))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uintParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.UserSvc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := h.AddressSvc.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, addr)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var input address.UpdateAddressInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	addr, err := h.AddressSvc.Update(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, addr)
}

func (h *Handler) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var input user.UpdatePaymentMethodInput
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.UserSvc.UpdatePaymentMethod(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"paymentMethod": input.Type})
}
