package broadcast

// Event tags pushed to observers. The Spanish literals are the wire
// vocabulary the existing clients already listen for.
const (
	// EventNewLocation carries a single freshly committed position.
	EventNewLocation = "nueva-ubicacion"
	// EventLocationsUpdate carries the full joined snapshot, on both the
	// event-driven and the periodic path.
	EventLocationsUpdate = "ubicaciones-actualizadas"
	// EventPackageAssigned carries a newly created package with an assignee.
	EventPackageAssigned = "paquete-asignado"
)

// Event is a tagged payload delivered to every subscribed observer.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"data"`
}
