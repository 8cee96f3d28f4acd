package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"services-backend/models"
)

// SyncService processes the inbound events that keep the local mirrors and
// the Service<->Barber relation consistent with the external owners. Each
// handler runs as a single unit of work; outbound events are published only
// after the transaction commits.
type SyncService struct {
	uow        UnitOfWork
	reconciler *Reconciler
	publisher  EventPublisher
	logger     *zap.Logger
}

func NewSyncService(uow UnitOfWork, reconciler *Reconciler, publisher EventPublisher, logger *zap.Logger) *SyncService {
	return &SyncService{
		uow:        uow,
		reconciler: reconciler,
		publisher:  publisher,
		logger:     logger,
	}
}

// BarberEventInput is the decoded barber event. RelationsProvided
// distinguishes an absent relatedServiceIds payload (the barber has no
// explicit relation yet, trigger the default-assignment policy) from an
// explicitly empty list (unassign everywhere).
type BarberEventInput struct {
	ID                string
	Name              string
	Active            bool
	RelatedServiceIDs []uuid.UUID
	RelationsProvided bool
}

// ReservationEventInput is the decoded reservation event. Status is kept as
// the raw wire string; the handler validates it against the closed set.
type ReservationEventInput struct {
	ID        string
	ServiceID uuid.UUID
	BarberID  string
	Start     time.Time
	Status    string
	Version   int64
}

// HandleBarberEvent upserts the barber mirror and converges the relation set.
// Event-asserted relations are reconciled silently (no outbound echo); a
// barber arriving with no relation payload gets the default assignment, whose
// changes are pushed back out so the owning system's mirror converges too.
func (s *SyncService) HandleBarberEvent(in BarberEventInput) error {
	var result *ReconcileResult

	err := s.uow.Do(func(repos RepositoryProvider) error {
		barber := &models.Barber{ID: in.ID, Name: in.Name, Active: in.Active}
		if err := repos.Barbers().Upsert(barber); err != nil {
			return fmt.Errorf("upsert barber %s: %w", in.ID, err)
		}

		var err error
		if !in.RelationsProvided {
			result, err = s.assignDefaults(repos, barber)
		} else {
			result, err = s.reconciler.ReconcileBarberServices(repos, in.ID, in.RelatedServiceIDs, true)
		}
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("barber event applied",
		zap.String("barberId", in.ID),
		zap.Bool("relationsProvided", in.RelationsProvided),
		zap.Int("modifiedServices", len(result.Changes)),
		zap.Bool("echo", result.Echo))

	if result.Echo {
		for _, change := range result.Changes {
			s.publisher.ServiceUpdated(change.Service, change.BarberIDs)
		}
	}
	return nil
}

// assignDefaults relates the barber to every ACTIVE service it is not yet
// related to. The whole fan-out runs inside the caller's transaction, and the
// changes are echoed outward: the originating system does not know about
// these default relations yet.
func (s *SyncService) assignDefaults(repos RepositoryProvider, barber *models.Barber) (*ReconcileResult, error) {
	result := &ReconcileResult{Echo: true}

	active, err := repos.Services().FindAllActive()
	if err != nil {
		return nil, fmt.Errorf("load active services: %w", err)
	}
	if len(active) == 0 {
		s.logger.Warn("no active services to default-assign", zap.String("barberId", barber.ID))
		return result, nil
	}

	for _, svc := range active {
		related, err := repos.Relations().Exists(svc.ID, barber.ID)
		if err != nil {
			return nil, err
		}
		if related {
			continue
		}
		change, err := s.reconciler.addRelation(repos, svc, barber.ID)
		if err != nil {
			return nil, fmt.Errorf("default-assign %s->%s: %w", svc.ID, barber.ID, err)
		}
		result.Changes = append(result.Changes, change)
	}
	return result, nil
}

// HandleReservationEvent upserts the reservation mirror. The returned
// DropReason reports expected discards; an error means an unexpected failure
// the caller should surface in telemetry (the event is still not redelivered).
func (s *SyncService) HandleReservationEvent(in ReservationEventInput) (DropReason, error) {
	reason := DropNone

	err := s.uow.Do(func(repos RepositoryProvider) error {
		// Referential-integrity guard: an event can outrun the creation of
		// the service it references. Drop and wait for a later replay.
		svc, err := repos.Services().FindByID(in.ServiceID)
		if err != nil {
			return err
		}
		if svc == nil {
			reason = DropOrphanService
			return nil
		}

		status, ok := models.ParseReservationStatus(in.Status)
		if !ok {
			reason = DropUnknownStatus
			return nil
		}

		existing, err := repos.Reservations().FindByID(in.ID)
		if err != nil {
			return err
		}
		if existing != nil && in.Version > 0 && in.Version < existing.Version {
			reason = DropStaleVersion
			return nil
		}

		return repos.Reservations().Upsert(&models.Reservation{
			ID:        in.ID,
			ServiceID: in.ServiceID,
			BarberID:  in.BarberID,
			Start:     in.Start,
			Status:    status,
			Version:   in.Version,
		})
	})
	if err != nil {
		return DropNone, err
	}

	if reason != DropNone {
		return reason, nil
	}
	s.logger.Info("reservation mirrored",
		zap.String("reservationId", in.ID),
		zap.String("serviceId", in.ServiceID.String()),
		zap.String("status", in.Status))
	return DropNone, nil
}
