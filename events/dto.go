package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Broker topology. This system owns service.exchange and publishes there;
// the barber and reservation exchanges belong to the respective owning
// services, and the two durable queues below collect everything they emit.
const (
	ServiceExchange     = "service.exchange"
	BarberExchange      = "barber.exchange"
	ReservationExchange = "reservation.exchange"

	BarberListenerQueue      = "service.barber.listener.queue"
	ReservationListenerQueue = "service.reservation.listener.queue"

	barberBindingKey      = "barber.#"
	reservationBindingKey = "reservation.#"

	RoutingServiceCreated     = "service.created"
	RoutingServiceUpdated     = "service.updated"
	RoutingServiceInactivated = "service.inactivated"
)

// BarberEvent is the inbound contract from the barbers service.
// RelatedServiceIDs is a pointer so an absent field (no explicit relation
// yet) can be told apart from an explicitly empty list (unassign everywhere).
type BarberEvent struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Active            bool         `json:"active"`
	RelatedServiceIDs *[]uuid.UUID `json:"relatedServiceIds,omitempty"`
}

// ReservationEvent is the inbound contract from the reservations service.
// Status stays a raw string here; the handler validates it. Version is
// optional and guards against out-of-order delivery when present.
type ReservationEvent struct {
	ID        string    `json:"id"`
	ServiceID uuid.UUID `json:"serviceId"`
	BarberID  string    `json:"barberId"`
	Start     time.Time `json:"start"`
	Status    string    `json:"status"`
	Version   int64     `json:"version,omitempty"`
}

// ServiceEvent is the outbound contract for service.created and
// service.updated: the full aggregate including the current barber ids.
type ServiceEvent struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Duration           int             `json:"duration"`
	RelatedBarberIDs   []string        `json:"relatedBarberIds"`
	AvailabilityStatus string          `json:"availabilityStatus"`
	SystemStatus       string          `json:"systemStatus"`
}

// ServiceInactivatedEvent is the deliberately minimal service.inactivated
// payload: downstream systems only need to stop referencing the service.
type ServiceInactivatedEvent struct {
	ID                 uuid.UUID `json:"id"`
	AvailabilityStatus string    `json:"availabilityStatus"`
	SystemStatus       string    `json:"systemStatus"`
}
