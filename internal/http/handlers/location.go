package handlers

import (
	"errors"
	"net/http"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/logx"
)

// LocationHandler serves HTTP endpoints for courier position state.
type LocationHandler struct {
	uc     locationUsecase
	logger logx.Logger
}

// NewLocationHandler wires a locationUsecase into HTTP handlers.
func NewLocationHandler(uc locationUsecase, logger logx.Logger) *LocationHandler {
	return &LocationHandler{uc: uc, logger: logger}
}

// Update handles POST /update-location. The mobile clients send numeric
// fields either as JSON numbers or as strings, so required fields are coerced
// before validation; a miss yields a 400 echoing received and required.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	rep, details := req.coerce()
	if details != nil {
		writeErrorDetails(h.logger, w, r, http.StatusBadRequest, "invalid input", details)
		return
	}

	p, err := h.uc.Report(r.Context(), rep)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, p)
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
	default:
		h.logger.Error("update location failed",
			logx.Int64("courier_id", rep.CourierID),
			logx.Any("payload", req),
			logx.Any("err", err),
		)
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /location: every live row joined with courier names.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.uc.ListJoined(ctx)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// LatestAll handles GET /location-latest: one row per courier.
func (h *LocationHandler) LatestAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.uc.LatestAll(ctx)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// Latest handles GET /location-latest/{userId}.
func (h *LocationHandler) Latest(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "userId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	p, err := h.uc.Latest(ctx, id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, p)
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
