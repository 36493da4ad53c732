package handlers

import (
	"errors"
	"net/http"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/logx"
)

// UserHandler serves HTTP endpoints for accounts and login.
type UserHandler struct {
	users  userLister
	auth   authUsecase
	logger logx.Logger
}

// NewUserHandler wires account listing and auth into HTTP handlers.
func NewUserHandler(users userLister, auth authUsecase, logger logx.Logger) *UserHandler {
	return &UserHandler{users: users, auth: auth, logger: logger}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.users.List(ctx)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// ListCouriers handles GET /users-delivery: courier accounts only.
func (h *UserHandler) ListCouriers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.users.ListCouriers(ctx)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// Login handles POST /login. A failed match is a plain 401 with no hint of
// whether the username exists.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	u, err := h.auth.Login(ctx, req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, u)
	case errors.Is(err, apperr.Invalid), errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
