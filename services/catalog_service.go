package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"services-backend/models"
)

// CatalogService implements the administrative lifecycle of the Service
// aggregate: creation (with inactive-name recycling), updates, barber
// assignment, and the guarded soft delete.
type CatalogService struct {
	uow        UnitOfWork
	reconciler *Reconciler
	publisher  EventPublisher
	logger     *zap.Logger
}

func NewCatalogService(uow UnitOfWork, reconciler *Reconciler, publisher EventPublisher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		uow:        uow,
		reconciler: reconciler,
		publisher:  publisher,
		logger:     logger,
	}
}

type CreateServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Duration    int
	CategoryID  uuid.UUID
}

type UpdateServiceInput struct {
	Name               string
	Description        string
	Price              decimal.Decimal
	Duration           int
	CategoryID         uuid.UUID
	AvailabilityStatus string // display form, e.g. "Available"
}

// Create registers a new service, or recycles an inactive record that holds
// the requested name: the old identity is reactivated with the new data and a
// cleared barber relation instead of permitting a duplicate name. New and
// recycled services start Unavailable until a barber is assigned.
func (s *CatalogService) Create(in CreateServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(in.Name)

	var svc *models.Service
	err := s.uow.Do(func(repos RepositoryProvider) error {
		existing, err := repos.Services().FindByNameIgnoreCase(name)
		if err != nil {
			return err
		}
		if existing != nil && existing.SystemStatus == models.SystemActive {
			return fmt.Errorf("active service named %q: %w", name, ErrAlreadyExists)
		}

		category, err := repos.Categories().FindByID(in.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("category %s: %w", in.CategoryID, ErrNotFound)
		}

		if existing != nil {
			// Reactivation path: recycle the inactive record's identity.
			if err := repos.Relations().RemoveAllForService(existing.ID); err != nil {
				return err
			}
			svc = existing
		} else {
			svc = &models.Service{}
		}

		svc.Name = name
		svc.Description = in.Description
		svc.Price = in.Price
		svc.Duration = in.Duration
		svc.CategoryID = category.ID
		svc.AvailabilityStatus = models.AvailabilityUnavailable
		svc.SystemStatus = models.SystemActive

		return repos.Services().Save(svc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("service created", zap.String("serviceId", svc.ID.String()), zap.String("name", svc.Name))
	s.publisher.ServiceCreated(svc, []string{})
	return svc, nil
}

// Update changes the basic fields of a service. Forcing the availability to
// Available while no barber is assigned is rejected; any unrecognized
// availability string falls back to Unavailable.
func (s *CatalogService) Update(id uuid.UUID, in UpdateServiceInput) (*models.Service, []string, error) {
	name := strings.TrimSpace(in.Name)

	var (
		svc       *models.Service
		barberIDs []string
	)
	err := s.uow.Do(func(repos RepositoryProvider) error {
		var err error
		svc, err = repos.Services().FindByID(id)
		if err != nil {
			return err
		}
		if svc == nil {
			return fmt.Errorf("service %s: %w", id, ErrNotFound)
		}

		taken, err := repos.Services().ExistsByNameExcludingID(name, id)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("another service named %q: %w", name, ErrAlreadyExists)
		}

		category, err := repos.Categories().FindByID(in.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("category %s: %w", in.CategoryID, ErrNotFound)
		}

		desired, ok := models.ParseAvailabilityDisplay(in.AvailabilityStatus)
		if !ok {
			desired = models.AvailabilityUnavailable
		}
		count, err := repos.Relations().CountForService(id)
		if err != nil {
			return err
		}
		if desired == models.AvailabilityAvailable && count == 0 {
			return fmt.Errorf("cannot mark service available with no barbers assigned: %w", ErrBusinessRule)
		}

		svc.Name = name
		svc.Description = in.Description
		svc.Price = in.Price
		svc.Duration = in.Duration
		svc.CategoryID = category.ID
		svc.AvailabilityStatus = desired

		if err := repos.Services().Save(svc); err != nil {
			return err
		}

		barberIDs, err = repos.Relations().BarberIDsForService(id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.publisher.ServiceUpdated(svc, barberIDs)
	return svc, barberIDs, nil
}

// AssignBarbers replaces the barber set of a service with exactly the given
// ids. All ids must exist in the mirror and be active. The resulting change is
// published outward; assignment through the API is not an echo of anything.
func (s *CatalogService) AssignBarbers(id uuid.UUID, barberIDs []string) (*models.Service, []string, error) {
	var (
		svc     *models.Service
		current []string
	)
	err := s.uow.Do(func(repos RepositoryProvider) error {
		var err error
		svc, err = repos.Services().FindByID(id)
		if err != nil {
			return err
		}
		if svc == nil {
			return fmt.Errorf("service %s: %w", id, ErrNotFound)
		}

		barbers, err := repos.Barbers().FindByIDs(barberIDs)
		if err != nil {
			return err
		}
		if len(barbers) != len(barberIDs) {
			return fmt.Errorf("one or more barbers do not exist: %w", ErrNotFound)
		}
		for _, b := range barbers {
			if !b.Active {
				return fmt.Errorf("barber %s is inactive and cannot be assigned: %w", b.ID, ErrBusinessRule)
			}
		}

		if _, err := s.reconciler.ReconcileServiceBarbers(repos, svc, barberIDs); err != nil {
			return err
		}

		current, err = repos.Relations().BarberIDsForService(id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.publisher.ServiceUpdated(svc, current)
	return svc, current, nil
}

// List returns the catalog, by default only ACTIVE services.
func (s *CatalogService) List(includeInactive bool) ([]*models.Service, error) {
	var out []*models.Service
	err := s.uow.Do(func(repos RepositoryProvider) error {
		var err error
		out, err = repos.Services().FindAll(includeInactive)
		return err
	})
	return out, err
}

func (s *CatalogService) GetByID(id uuid.UUID) (*models.Service, error) {
	var svc *models.Service
	err := s.uow.Do(func(repos RepositoryProvider) error {
		var err error
		svc, err = repos.Services().FindByID(id)
		if err != nil {
			return err
		}
		if svc == nil {
			return fmt.Errorf("service %s: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) GetBarberIDs(id uuid.UUID) ([]string, error) {
	var ids []string
	err := s.uow.Do(func(repos RepositoryProvider) error {
		svc, err := repos.Services().FindByID(id)
		if err != nil {
			return err
		}
		if svc == nil {
			return fmt.Errorf("service %s: %w", id, ErrNotFound)
		}
		ids, err = repos.Relations().BarberIDsForService(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete inactivates a service (soft delete, one-way). The transition is
// refused while any mirrored reservation in a blocking state references the
// service; on success the barber relation is cleared, both statuses go to
// their terminal values, and a minimal inactivation event is published.
func (s *CatalogService) Delete(id uuid.UUID) error {
	err := s.uow.Do(func(repos RepositoryProvider) error {
		svc, err := repos.Services().FindByID(id)
		if err != nil {
			return err
		}
		if svc == nil {
			return fmt.Errorf("service %s: %w", id, ErrNotFound)
		}

		blocked, err := repos.Reservations().ExistsBlockingForService(id)
		if err != nil {
			return err
		}
		if blocked {
			return fmt.Errorf("service has pending or in-progress reservations: %w", ErrBusinessRule)
		}

		if err := repos.Relations().RemoveAllForService(id); err != nil {
			return err
		}

		svc.SystemStatus = models.SystemInactive
		svc.AvailabilityStatus = models.AvailabilityUnavailable
		return repos.Services().Save(svc)
	})
	if err != nil {
		return err
	}

	s.logger.Info("service inactivated", zap.String("serviceId", id.String()))
	s.publisher.ServiceInactivated(id)
	return nil
}
