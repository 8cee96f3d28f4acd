package services

import (
	"go.uber.org/zap"
)

// AvailabilityAudit sweeps the catalog and repairs any service whose stored
// availability disagrees with its barber-relation cardinality. Drift should
// not happen while every mutation goes through the reconciler; the sweep
// exists to catch interrupted work and to make the invariant observable.
type AvailabilityAudit struct {
	uow       UnitOfWork
	publisher EventPublisher
	logger    *zap.Logger
}

func NewAvailabilityAudit(uow UnitOfWork, publisher EventPublisher, logger *zap.Logger) *AvailabilityAudit {
	return &AvailabilityAudit{uow: uow, publisher: publisher, logger: logger}
}

// Run checks every ACTIVE service and fixes mismatched availability. Repairs
// are real state changes, so they are published as service.updated after the
// sweep's transaction commits.
func (a *AvailabilityAudit) Run() {
	var repaired []ServiceChange

	err := a.uow.Do(func(repos RepositoryProvider) error {
		active, err := repos.Services().FindAllActive()
		if err != nil {
			return err
		}
		for _, svc := range active {
			count, err := repos.Relations().CountForService(svc.ID)
			if err != nil {
				return err
			}
			expected := DeriveAvailability(count)
			if svc.AvailabilityStatus == expected {
				continue
			}

			a.logger.Warn("availability drift detected",
				zap.String("serviceId", svc.ID.String()),
				zap.String("stored", string(svc.AvailabilityStatus)),
				zap.String("expected", string(expected)),
				zap.Int64("barberCount", count))

			svc.AvailabilityStatus = expected
			if err := repos.Services().Save(svc); err != nil {
				return err
			}
			barberIDs, err := repos.Relations().BarberIDsForService(svc.ID)
			if err != nil {
				return err
			}
			repaired = append(repaired, ServiceChange{Service: svc, BarberIDs: barberIDs})
		}
		return nil
	})
	if err != nil {
		a.logger.Error("availability audit failed", zap.Error(err))
		return
	}

	for _, change := range repaired {
		a.publisher.ServiceUpdated(change.Service, change.BarberIDs)
	}
	if len(repaired) > 0 {
		a.logger.Info("availability audit repaired services", zap.Int("count", len(repaired)))
	}
}
