package services

import (
	"github.com/google/uuid"

	"services-backend/models"
)

// ServiceRepository persists the locally-owned Service aggregate.
type ServiceRepository interface {
	FindByID(id uuid.UUID) (*models.Service, error)
	FindByIDs(ids []uuid.UUID) ([]*models.Service, error)
	// FindByNameIgnoreCase returns nil when no service carries the name.
	FindByNameIgnoreCase(name string) (*models.Service, error)
	ExistsByNameExcludingID(name string, id uuid.UUID) (bool, error)
	FindAll(includeInactive bool) ([]*models.Service, error)
	FindAllActive() ([]*models.Service, error)
	Save(s *models.Service) error
}

// RelationRepository owns the service_barbers join rows. The reconciler is
// its only writer.
type RelationRepository interface {
	Exists(serviceID uuid.UUID, barberID string) (bool, error)
	Add(serviceID uuid.UUID, barberID string) error
	Remove(serviceID uuid.UUID, barberID string) error
	RemoveAllForService(serviceID uuid.UUID) error
	ServiceIDsForBarber(barberID string) ([]uuid.UUID, error)
	BarberIDsForService(serviceID uuid.UUID) ([]string, error)
	CountForService(serviceID uuid.UUID) (int64, error)
}

// BarberRepository persists the barber mirror. Only the event subsystem
// writes it.
type BarberRepository interface {
	FindByID(id string) (*models.Barber, error)
	FindByIDs(ids []string) ([]*models.Barber, error)
	Upsert(b *models.Barber) error
}

// ReservationRepository persists the reservation mirror. Only the event
// subsystem writes it.
type ReservationRepository interface {
	FindByID(id string) (*models.Reservation, error)
	Upsert(r *models.Reservation) error
	ExistsBlockingForService(serviceID uuid.UUID) (bool, error)
}

// CategoryRepository persists service categories.
type CategoryRepository interface {
	FindByID(id uuid.UUID) (*models.Category, error)
	ExistsByName(name string) (bool, error)
	FindAll() ([]*models.Category, error)
	Save(c *models.Category) error
}

// RepositoryProvider hands out repositories bound to the same transaction.
type RepositoryProvider interface {
	Services() ServiceRepository
	Relations() RelationRepository
	Barbers() BarberRepository
	Reservations() ReservationRepository
	Categories() CategoryRepository
}

// UnitOfWork runs fn inside one transaction: every repository obtained from
// the provider shares it, and either all writes commit or none do. One
// inbound event maps to exactly one Do call.
type UnitOfWork interface {
	Do(fn func(repos RepositoryProvider) error) error
}

// EventPublisher emits service lifecycle events to the broker. Callers must
// invoke it only after the owning transaction has committed.
type EventPublisher interface {
	ServiceCreated(s *models.Service, barberIDs []string)
	ServiceUpdated(s *models.Service, barberIDs []string)
	ServiceInactivated(id uuid.UUID)
}
