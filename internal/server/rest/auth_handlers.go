package rest

import (
	"errors"
	"net/http"

	"github.com/huseyinozgul/docvault/internal/common"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.bind(w, r, &req) {
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err, msgInternal)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Email: u.Email})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.bind(w, r, &req) {
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			w.Header().Set("WWW-Authenticate", wwwAuthenticateBearer)
		}
		h.writeError(w, r, err, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType})
}

// bind decodes and validates the body, answering 422 on failure.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := decodeBody(w, r, dst)
	if err == nil {
		return true
	}
	if errors.Is(err, errBodyTooLarge) {
		writeDetail(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return false
	}
	var verr *validationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return false
	}
	h.writeError(w, r, err, msgInternal)
	return false
}
