package domain

import "time"

// Package represents a delivery package, optionally assigned to a courier.
type Package struct {
	ID              int64         `json:"id"`
	DeliveryAddress string        `json:"delivery_address"`
	DeliveryLat     *float64      `json:"delivery_lat,omitempty"`
	DeliveryLng     *float64      `json:"delivery_lng,omitempty"`
	Status          PackageStatus `json:"status"`
	AssignedTo      *int64        `json:"assigned_to,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// NewPackage carries the fields accepted when creating a package.
// A nil CreatedAt means "assign server-side at write time".
type NewPackage struct {
	DeliveryAddress string
	DeliveryLat     *float64
	DeliveryLng     *float64
	Status          PackageStatus
	AssignedTo      *int64
	CreatedAt       *time.Time
}

// PackageFilter narrows package listings. Nil fields mean "no filter".
type PackageFilter struct {
	Status     *PackageStatus
	AssignedTo *int64
}
