package handlers

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"courier-tracking/internal/domain"
)

// updateLocationRequest accepts the position report body. The numeric fields
// arrive as JSON numbers from some clients and as strings from others, so
// they are taken raw and coerced explicitly.
type updateLocationRequest struct {
	UserID  any    `json:"user_id"`
	LastLat any    `json:"last_lat"`
	LastLng any    `json:"last_lng"`
	Status  string `json:"status,omitempty"`
}

var updateLocationRequired = []string{"user_id", "last_lat", "last_lng"}

// invalidFieldDetails echoes what was received and what is required, so the
// client can see which field failed coercion.
type invalidFieldDetails struct {
	Received map[string]any `json:"received"`
	Required []string       `json:"required"`
}

// coerce turns the raw body into a PositionReport, or returns the details
// payload of a 400 when a required field is missing or non-numeric.
func (r updateLocationRequest) coerce() (domain.PositionReport, *invalidFieldDetails) {
	userID, okID := coerceInt64(r.UserID)
	lat, okLat := coerceFloat(r.LastLat)
	lng, okLng := coerceFloat(r.LastLng)
	if !okID || !okLat || !okLng {
		return domain.PositionReport{}, &invalidFieldDetails{
			Received: map[string]any{
				"user_id":  r.UserID,
				"last_lat": r.LastLat,
				"last_lng": r.LastLng,
			},
			Required: updateLocationRequired,
		}
	}
	return domain.PositionReport{
		CourierID: userID,
		Lat:       lat,
		Lng:       lng,
		Status:    domain.PositionStatus(r.Status),
	}, nil
}

func coerceFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceInt64(v any) (int64, bool) {
	f, ok := coerceFloat(v)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// addPackageRequest accepts the package creation body. created_at is
// optional; a missing value is assigned server-side.
type addPackageRequest struct {
	DeliveryAddress string     `json:"delivery_address"`
	DeliveryLat     *float64   `json:"delivery_lat,omitempty"`
	DeliveryLng     *float64   `json:"delivery_lng,omitempty"`
	Status          string     `json:"status,omitempty"`
	AssignedTo      *int64     `json:"assigned_to,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

func (r addPackageRequest) toDomain() domain.NewPackage {
	return domain.NewPackage{
		DeliveryAddress: r.DeliveryAddress,
		DeliveryLat:     r.DeliveryLat,
		DeliveryLng:     r.DeliveryLng,
		Status:          domain.PackageStatus(r.Status),
		AssignedTo:      r.AssignedTo,
		CreatedAt:       r.CreatedAt,
	}
}

// updateStatusRequest accepts a package status mutation. UserID identifies
// the requesting courier; the mutation only matches packages assigned to it.
type updateStatusRequest struct {
	Status string `json:"status"`
	UserID int64  `json:"user_id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
