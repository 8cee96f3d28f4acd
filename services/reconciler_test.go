package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"services-backend/models"
)

func TestReconcileBarberServicesConvergesToAssertedSet(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(zap.NewNop())

	s1 := store.addService("Haircut", models.SystemActive)
	s2 := store.addService("Beard Trim", models.SystemActive)
	s3 := store.addService("Combo", models.SystemActive)

	// b1 currently relates to s1 and s2; both are available because of it.
	store.relate(s1.ID, "b1")
	store.relate(s2.ID, "b1")
	s1.AvailabilityStatus = models.AvailabilityAvailable
	s2.AvailabilityStatus = models.AvailabilityAvailable

	result, err := rec.ReconcileBarberServices(store, "b1", []uuid.UUID{s2.ID, s3.ID}, true)
	require.NoError(t, err)
	assert.False(t, result.Echo)

	ids, _ := store.Relations().ServiceIDsForBarber("b1")
	assert.ElementsMatch(t, []uuid.UUID{s2.ID, s3.ID}, ids)

	// s1 lost its only barber, s3 gained its first, s2 was untouched.
	assert.Equal(t, models.AvailabilityUnavailable, s1.AvailabilityStatus)
	assert.Equal(t, models.AvailabilityAvailable, s2.AvailabilityStatus)
	assert.Equal(t, models.AvailabilityAvailable, s3.AvailabilityStatus)
	assert.Len(t, result.Changes, 2)
}

func TestReconcileBarberServicesIsIdempotent(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(zap.NewNop())

	s1 := store.addService("Haircut", models.SystemActive)
	s2 := store.addService("Beard Trim", models.SystemActive)
	want := []uuid.UUID{s1.ID, s2.ID}

	first, err := rec.ReconcileBarberServices(store, "b1", want, true)
	require.NoError(t, err)
	assert.Len(t, first.Changes, 2)

	replay, err := rec.ReconcileBarberServices(store, "b1", want, true)
	require.NoError(t, err)
	assert.Empty(t, replay.Changes)

	ids, _ := store.Relations().ServiceIDsForBarber("b1")
	assert.ElementsMatch(t, want, ids)
}

func TestReconcileBarberServicesSkipsUnknownServices(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(zap.NewNop())

	s1 := store.addService("Haircut", models.SystemActive)
	unknown := uuid.New()

	result, err := rec.ReconcileBarberServices(store, "b1", []uuid.UUID{s1.ID, unknown}, true)
	require.NoError(t, err)
	assert.Len(t, result.Changes, 1)

	ids, _ := store.Relations().ServiceIDsForBarber("b1")
	assert.Equal(t, []uuid.UUID{s1.ID}, ids)
}

func TestReconcileBarberServicesEmptySetUnassignsEverywhere(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(zap.NewNop())

	s1 := store.addService("Haircut", models.SystemActive)
	s2 := store.addService("Beard Trim", models.SystemActive)
	store.relate(s1.ID, "b1")
	store.relate(s2.ID, "b1")
	store.relate(s2.ID, "b2")
	s1.AvailabilityStatus = models.AvailabilityAvailable
	s2.AvailabilityStatus = models.AvailabilityAvailable

	result, err := rec.ReconcileBarberServices(store, "b1", nil, true)
	require.NoError(t, err)
	assert.Len(t, result.Changes, 2)

	ids, _ := store.Relations().ServiceIDsForBarber("b1")
	assert.Empty(t, ids)

	// s2 still has b2, so it stays available; s1 flips.
	assert.Equal(t, models.AvailabilityUnavailable, s1.AvailabilityStatus)
	assert.Equal(t, models.AvailabilityAvailable, s2.AvailabilityStatus)
}

func TestAddRelationRecomputesAvailabilityAndReportsChange(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(zap.NewNop())

	svc := store.addService("Haircut", models.SystemActive)

	change, err := rec.addRelation(store, svc, "b1")
	require.NoError(t, err)

	assert.Equal(t, models.AvailabilityAvailable, svc.AvailabilityStatus)
	assert.Equal(t, svc.ID, change.Service.ID)
	assert.Equal(t, []string{"b1"}, change.BarberIDs)

	related, _ := store.Relations().Exists(svc.ID, "b1")
	assert.True(t, related)
}

func TestReconcileServiceBarbersReplacesSet(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(zap.NewNop())

	svc := store.addService("Haircut", models.SystemActive)
	store.relate(svc.ID, "b1")
	store.relate(svc.ID, "b2")
	svc.AvailabilityStatus = models.AvailabilityAvailable

	changed, err := rec.ReconcileServiceBarbers(store, svc, []string{"b2", "b3"})
	require.NoError(t, err)
	assert.True(t, changed)

	ids, _ := store.Relations().BarberIDsForService(svc.ID)
	assert.ElementsMatch(t, []string{"b2", "b3"}, ids)
	assert.Equal(t, models.AvailabilityAvailable, svc.AvailabilityStatus)

	changed, err = rec.ReconcileServiceBarbers(store, svc, []string{"b2", "b3"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestReconcileServiceBarbersEmptySetMakesUnavailable(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler(zap.NewNop())

	svc := store.addService("Haircut", models.SystemActive)
	store.relate(svc.ID, "b1")
	svc.AvailabilityStatus = models.AvailabilityAvailable

	changed, err := rec.ReconcileServiceBarbers(store, svc, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.AvailabilityUnavailable, svc.AvailabilityStatus)
}
