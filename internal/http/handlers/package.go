package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/domain"
	"courier-tracking/internal/logx"
)

// PackageHandler serves HTTP endpoints for package resources.
type PackageHandler struct {
	uc     packageUsecase
	logger logx.Logger
}

// NewPackageHandler wires a packageUsecase into HTTP handlers.
func NewPackageHandler(uc packageUsecase, logger logx.Logger) *PackageHandler {
	return &PackageHandler{uc: uc, logger: logger}
}

// Create handles POST /add-package.
func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addPackageRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p, err := h.uc.Create(r.Context(), req.toDomain())
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, p)
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "assignee not found")
	default:
		h.logger.Error("create package failed", logx.Any("payload", req), logx.Any("err", err))
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /paquetes.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.PackageFilter{})
}

// ListFiltered handles GET /paquetesUs?status=&assigned_to=.
func (h *PackageHandler) ListFiltered(w http.ResponseWriter, r *http.Request) {
	var f domain.PackageFilter
	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		st := domain.PackageStatus(s)
		f.Status = &st
	}
	if s := q.Get("assigned_to"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid assigned_to")
			return
		}
		f.AssignedTo = &v
	}
	h.list(w, r, f)
}

func (h *PackageHandler) list(w http.ResponseWriter, r *http.Request, f domain.PackageFilter) {
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.uc.List(ctx, f)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, list)
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ListForCourier handles GET /packages/{userId}: assigned packages, newest first.
func (h *PackageHandler) ListForCourier(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "userId")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.uc.ListForCourier(ctx, id)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// UpdateStatus handles PATCH /packages/{id} and PATCH /update-status/{id}.
// Both routes are ownership-restricted: the mutation matches only when the
// package is assigned to the requesting courier.
func (h *PackageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p, err := h.uc.UpdateStatus(r.Context(), id, domain.PackageStatus(req.Status), req.UserID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, p)
	case errors.Is(err, apperr.Invalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
	case errors.Is(err, apperr.NotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "package not found or not assigned to this courier")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
