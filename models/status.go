package models

import "strings"

// Enum values are stored in the database as their upper-snake names and
// exposed on the wire (API responses and events) as display strings. All
// conversions go through the tables below; nothing else maps these values.

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "AVAILABLE"
	AvailabilityUnavailable AvailabilityStatus = "UNAVAILABLE"
)

type SystemStatus string

const (
	SystemActive   SystemStatus = "ACTIVE"
	SystemInactive SystemStatus = "INACTIVE"
)

// ReservationStatus replicates the lifecycle states owned by the reservations
// service. Only the blocking subset matters locally: a service cannot be
// inactivated while a reservation in one of those states references it.
type ReservationStatus string

const (
	ReservationConfirmedPending ReservationStatus = "CONFIRMED_PENDING"
	ReservationInProgress       ReservationStatus = "IN_PROGRESS"
	ReservationNoShow           ReservationStatus = "NO_SHOW"
	ReservationFinished         ReservationStatus = "FINISHED"
	ReservationCancelled        ReservationStatus = "CANCELLED"
)

// BlockingReservationStatuses are the states that veto service inactivation.
var BlockingReservationStatuses = []ReservationStatus{
	ReservationConfirmedPending,
	ReservationInProgress,
}

var availabilityDisplay = map[AvailabilityStatus]string{
	AvailabilityAvailable:   "Available",
	AvailabilityUnavailable: "Unavailable",
}

var systemDisplay = map[SystemStatus]string{
	SystemActive:   "Active",
	SystemInactive: "Inactive",
}

func (s AvailabilityStatus) Display() string {
	return availabilityDisplay[s]
}

func (s SystemStatus) Display() string {
	return systemDisplay[s]
}

// ParseAvailabilityDisplay resolves a display string back to its status,
// ignoring case. The bool reports whether the input matched a known value.
func ParseAvailabilityDisplay(v string) (AvailabilityStatus, bool) {
	for status, display := range availabilityDisplay {
		if strings.EqualFold(v, display) {
			return status, true
		}
	}
	return "", false
}

// ParseReservationStatus validates an inbound status string against the
// closed set. Unknown values mean contract drift with the remote owner and
// must not be persisted.
func ParseReservationStatus(v string) (ReservationStatus, bool) {
	switch ReservationStatus(strings.ToUpper(strings.TrimSpace(v))) {
	case ReservationConfirmedPending:
		return ReservationConfirmedPending, true
	case ReservationInProgress:
		return ReservationInProgress, true
	case ReservationNoShow:
		return ReservationNoShow, true
	case ReservationFinished:
		return ReservationFinished, true
	case ReservationCancelled:
		return ReservationCancelled, true
	}
	return "", false
}

// Blocking reports whether this status prevents inactivation of the
// referenced service.
func (s ReservationStatus) Blocking() bool {
	for _, b := range BlockingReservationStatuses {
		if s == b {
			return true
		}
	}
	return false
}
