package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a read-only mirror of the reservations service's data,
// kept so the inactivation guard can run locally instead of calling the
// owning service synchronously. Only the event handler writes these rows.
type Reservation struct {
	ID        string    `gorm:"type:varchar(64);primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	Service   *Service  `gorm:"foreignKey:ServiceID" json:"-"`
	BarberID  string    `gorm:"type:varchar(64)" json:"barberId"`

	Start  time.Time         `gorm:"not null" json:"start"`
	Status ReservationStatus `gorm:"type:varchar(30);not null" json:"status"`

	// Version is a monotonic guard against out-of-order delivery: an inbound
	// event carrying a lower version than the stored row is stale and dropped.
	// Zero means the emitter sent no version, in which case the upsert
	// overwrites unconditionally.
	Version int64 `gorm:"not null;default:0" json:"version"`

	UpdatedAt time.Time `json:"updatedAt"`
}
