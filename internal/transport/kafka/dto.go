package kafka

import (
	"time"

	"courier-tracking/internal/domain"
)

// PositionEventDTO is the wire shape of a committed position report.
type PositionEventDTO struct {
	CourierID  int64     `json:"courier_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Status     string    `json:"status"`
	LastUpdate time.Time `json:"last_update"`
}

// FromDomain converts a CourierPosition to its wire shape.
func FromDomain(p domain.CourierPosition) PositionEventDTO {
	return PositionEventDTO{
		CourierID:  p.CourierID,
		Lat:        p.Lat,
		Lng:        p.Lng,
		Status:     string(p.Status),
		LastUpdate: p.LastUpdate,
	}
}
