package domain

import "time"

// CourierPosition is the single live location row kept per courier.
type CourierPosition struct {
	CourierID  int64          `json:"user_id"`
	Lat        float64        `json:"last_lat"`
	Lng        float64        `json:"last_lng"`
	Status     PositionStatus `json:"status"`
	LastUpdate time.Time      `json:"last_update"`
	// CourierName is filled only by joined reads; empty elsewhere.
	CourierName string `json:"username,omitempty"`
}

// PositionReport carries a single inbound position report for a courier.
type PositionReport struct {
	CourierID int64
	Lat       float64
	Lng       float64
	Status    PositionStatus
}
