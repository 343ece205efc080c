package ports

// EventKind names a dispatch domain event on the wire.
type EventKind string

const (
	// EventNewOrder is emitted when an order is created.
	EventNewOrder EventKind = "new_order"

	// EventOrderUpdated is emitted when an order changes status or
	// gets a driver assigned.
	EventOrderUpdated EventKind = "order_updated"

	// EventDriverUpdated is emitted when a driver's presence,
	// availability, position or approval changes.
	EventDriverUpdated EventKind = "driver_updated"

	// EventNewAssignment is emitted when an order is matched to a driver.
	EventNewAssignment EventKind = "new_assignment"
)

// Event is a domain notification pushed to connected dashboard clients.
// Payload is a JSON-serializable snapshot of the affected entity.
type Event struct {
	Kind    EventKind `json:"type"`
	Payload any       `json:"data"`
}

// EventPublisher fans events out to whoever is listening. Delivery is
// at most once and non-blocking: a slow or absent subscriber never
// stalls the publishing workflow, and missed events are not replayed.
// Clients are expected to re-query current state after reconnecting.
type EventPublisher interface {
	Publish(event Event)
}
