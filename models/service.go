package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the aggregate root of this bounded context. Everything else in
// the data model either classifies it (Category) or mirrors remote state that
// constrains it (Barber, Reservation).
type Service struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"not null;uniqueIndex" json:"name"`
	Description string          `gorm:"not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int             `gorm:"not null" json:"duration"` // minutes
	CategoryID  uuid.UUID       `gorm:"type:uuid;index;not null" json:"categoryId"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// Barbers qualified to perform this service. Writes never go through this
	// navigation field; the relation is mutated exclusively via ServiceBarber
	// rows so the reconciliation diff stays explicit.
	Barbers []Barber `gorm:"many2many:service_barbers" json:"barbers,omitempty"`

	AvailabilityStatus AvailabilityStatus `gorm:"type:varchar(20);not null" json:"availabilityStatus"`
	SystemStatus       SystemStatus       `gorm:"type:varchar(20);not null" json:"systemStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BarberIDs returns the ids of the preloaded barbers.
func (s *Service) BarberIDs() []string {
	ids := make([]string, 0, len(s.Barbers))
	for _, b := range s.Barbers {
		ids = append(ids, b.ID)
	}
	return ids
}

// ServiceBarber is the join row behind the Service<->Barber relation. The
// reconciler adds and removes these rows directly instead of mutating the
// in-memory collection.
type ServiceBarber struct {
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BarberID  string    `gorm:"type:varchar(64);primaryKey"`

	CreatedAt time.Time
}
