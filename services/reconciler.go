package services

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"services-backend/models"
)

// Reconciler converges the Service<->Barber relation onto an authoritative
// id set asserted by an event or an API call. The diff is applied as two
// passes over the join rows — additions first, then removals — so the anchor's
// relation set equals exactly the asserted set afterwards, and replaying the
// same set is a no-op.
type Reconciler struct {
	logger *zap.Logger
}

func NewReconciler(logger *zap.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// ServiceChange is a service whose relation set or availability was altered
// by a reconciliation, together with its barber ids after the change.
type ServiceChange struct {
	Service   *models.Service
	BarberIDs []string
}

// ReconcileResult reports what a reconciliation touched. Echo tells the
// caller whether the changes should be re-published outward: it is false for
// reconciliations driven by an inbound event from the system that owns the
// relation, because echoing those changes back would ping-pong indefinitely.
type ReconcileResult struct {
	Changes []ServiceChange
	Echo    bool
}

// ReconcileBarberServices makes the set of services related to barberID equal
// exactly want. Services in want that do not exist locally are skipped; the
// mirror may simply not have seen them yet.
func (r *Reconciler) ReconcileBarberServices(repos RepositoryProvider, barberID string, want []uuid.UUID, suppressEcho bool) (*ReconcileResult, error) {
	result := &ReconcileResult{Echo: !suppressEcho}

	wanted := make(map[uuid.UUID]bool, len(want))
	for _, id := range want {
		wanted[id] = true
	}

	// Addition pass.
	targets, err := repos.Services().FindByIDs(want)
	if err != nil {
		return nil, fmt.Errorf("load target services: %w", err)
	}
	for _, svc := range targets {
		related, err := repos.Relations().Exists(svc.ID, barberID)
		if err != nil {
			return nil, err
		}
		if related {
			continue
		}
		change, err := r.addRelation(repos, svc, barberID)
		if err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, change)
	}

	// Removal pass.
	current, err := repos.Relations().ServiceIDsForBarber(barberID)
	if err != nil {
		return nil, fmt.Errorf("load current relations: %w", err)
	}
	for _, serviceID := range current {
		if wanted[serviceID] {
			continue
		}
		if err := repos.Relations().Remove(serviceID, barberID); err != nil {
			return nil, fmt.Errorf("remove relation %s->%s: %w", serviceID, barberID, err)
		}
		svc, err := repos.Services().FindByID(serviceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			continue
		}
		if err := r.recompute(repos, svc); err != nil {
			return nil, err
		}
		change, err := r.change(repos, svc)
		if err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, change)
	}

	if len(result.Changes) > 0 {
		r.logger.Debug("reconciled barber relations",
			zap.String("barberId", barberID),
			zap.Int("modifiedServices", len(result.Changes)),
			zap.Bool("echo", result.Echo))
	}
	return result, nil
}

// ReconcileServiceBarbers makes the barber set of one service equal exactly
// want. Returns whether anything changed.
func (r *Reconciler) ReconcileServiceBarbers(repos RepositoryProvider, svc *models.Service, want []string) (bool, error) {
	current, err := repos.Relations().BarberIDsForService(svc.ID)
	if err != nil {
		return false, err
	}
	currentSet := make(map[string]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	wantedSet := make(map[string]bool, len(want))
	for _, id := range want {
		wantedSet[id] = true
	}

	changed := false
	for _, barberID := range want {
		if currentSet[barberID] {
			continue
		}
		if err := repos.Relations().Add(svc.ID, barberID); err != nil {
			return false, fmt.Errorf("add relation %s->%s: %w", svc.ID, barberID, err)
		}
		changed = true
	}
	for _, barberID := range current {
		if wantedSet[barberID] {
			continue
		}
		if err := repos.Relations().Remove(svc.ID, barberID); err != nil {
			return false, fmt.Errorf("remove relation %s->%s: %w", svc.ID, barberID, err)
		}
		changed = true
	}

	if err := r.recompute(repos, svc); err != nil {
		return false, err
	}
	return changed, nil
}

// addRelation relates barberID to svc, recomputes availability and reports
// the resulting change. Callers must have checked the relation is absent.
// Both the event-driven addition pass and the default-assignment fan-out go
// through here so the two cannot drift apart.
func (r *Reconciler) addRelation(repos RepositoryProvider, svc *models.Service, barberID string) (ServiceChange, error) {
	if err := repos.Relations().Add(svc.ID, barberID); err != nil {
		return ServiceChange{}, fmt.Errorf("add relation %s->%s: %w", svc.ID, barberID, err)
	}
	if err := r.recompute(repos, svc); err != nil {
		return ServiceChange{}, err
	}
	return r.change(repos, svc)
}

// recompute re-derives availability from the current relation cardinality and
// persists the service only when the status actually flips.
func (r *Reconciler) recompute(repos RepositoryProvider, svc *models.Service) error {
	count, err := repos.Relations().CountForService(svc.ID)
	if err != nil {
		return err
	}
	derived := DeriveAvailability(count)
	if svc.AvailabilityStatus == derived {
		return nil
	}
	svc.AvailabilityStatus = derived
	return repos.Services().Save(svc)
}

func (r *Reconciler) change(repos RepositoryProvider, svc *models.Service) (ServiceChange, error) {
	barberIDs, err := repos.Relations().BarberIDsForService(svc.ID)
	if err != nil {
		return ServiceChange{}, err
	}
	return ServiceChange{Service: svc, BarberIDs: barberIDs}, nil
}
