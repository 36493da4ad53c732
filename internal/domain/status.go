package domain

type (
	// PositionStatus represents the reported state of a courier on route.
	PositionStatus string
	// PackageStatus represents the lifecycle state of a package.
	PackageStatus string
)

// List of possible courier position statuses. The Spanish literals are the
// wire vocabulary the mobile clients already speak.
const (
	PositionInTransit    PositionStatus = "en transito"
	PositionDelivered    PositionStatus = "entregado"
	PositionAvailable    PositionStatus = "disponible"
	PositionOutOfService PositionStatus = "fuera de servicio"
)

// List of possible package statuses
const (
	PackageCreated   PackageStatus = "created"
	PackageAssigned  PackageStatus = "assigned"
	PackageInTransit PackageStatus = "in-transit"
	PackageDelivered PackageStatus = "delivered"
	PackageCancelled PackageStatus = "cancelled"
)

// List of possible account roles
const (
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

var allowedPositionStatuses = [...]PositionStatus{
	PositionInTransit, PositionDelivered, PositionAvailable, PositionOutOfService,
}

var allowedPackageStatuses = [...]PackageStatus{
	PackageCreated, PackageAssigned, PackageInTransit, PackageDelivered, PackageCancelled,
}

var allowedRoles = [...]Role{RoleAdmin, RoleCourier}

// Valid checks if the PositionStatus is valid
func (s PositionStatus) Valid() bool {
	for _, v := range allowedPositionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the PackageStatus is valid
func (s PackageStatus) Valid() bool {
	for _, v := range allowedPackageStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ValidLatLng reports whether the pair is a finite in-range coordinate.
func ValidLatLng(lat, lng float64) bool {
	if lat != lat || lng != lng { // NaN
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
