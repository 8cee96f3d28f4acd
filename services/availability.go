package services

import "services-backend/models"

// DeriveAvailability is the single rule deciding whether a service can be
// booked: available exactly when at least one barber is assigned. Every
// relation mutation must be followed by a recompute through this function;
// no other code assigns AvailabilityStatus except the inactivation workflow,
// which forces Unavailable as a direct consequence of clearing the relation.
func DeriveAvailability(barberCount int64) models.AvailabilityStatus {
	if barberCount > 0 {
		return models.AvailabilityAvailable
	}
	return models.AvailabilityUnavailable
}
