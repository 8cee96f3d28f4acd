package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"services-backend/models"
)

func newSyncFixture() (*SyncService, *fakeStore, *fakePublisher) {
	store := newFakeStore()
	pub := &fakePublisher{}
	sync := NewSyncService(store, NewReconciler(zap.NewNop()), pub, zap.NewNop())
	return sync, store, pub
}

func TestHandleBarberEventDefaultAssignsAndEchoes(t *testing.T) {
	sync, store, pub := newSyncFixture()

	active1 := store.addService("Haircut", models.SystemActive)
	active2 := store.addService("Beard Trim", models.SystemActive)
	inactive := store.addService("Old Cut", models.SystemInactive)

	err := sync.HandleBarberEvent(BarberEventInput{
		ID:     "b1",
		Name:   "Ana",
		Active: true,
		// No relation payload on the wire.
		RelationsProvided: false,
	})
	require.NoError(t, err)

	ids, _ := store.Relations().ServiceIDsForBarber("b1")
	assert.ElementsMatch(t, []uuid.UUID{active1.ID, active2.ID}, ids)
	assert.Equal(t, models.AvailabilityAvailable, active1.AvailabilityStatus)
	assert.Equal(t, models.AvailabilityAvailable, active2.AvailabilityStatus)
	assert.Equal(t, models.AvailabilityUnavailable, inactive.AvailabilityStatus)

	// Default assignment originates locally, so it must be pushed back out.
	assert.Len(t, pub.updated, 2)

	require.NotNil(t, store.barbers["b1"])
	assert.Equal(t, "Ana", store.barbers["b1"].Name)
}

func TestHandleBarberEventAssertedRelationsAreSilent(t *testing.T) {
	sync, store, pub := newSyncFixture()

	s1 := store.addService("Haircut", models.SystemActive)
	s2 := store.addService("Beard Trim", models.SystemActive)
	store.relate(s1.ID, "b1")
	s1.AvailabilityStatus = models.AvailabilityAvailable

	want := []uuid.UUID{s2.ID}
	err := sync.HandleBarberEvent(BarberEventInput{
		ID:                "b1",
		Name:              "Ana",
		Active:            true,
		RelatedServiceIDs: want,
		RelationsProvided: true,
	})
	require.NoError(t, err)

	ids, _ := store.Relations().ServiceIDsForBarber("b1")
	assert.Equal(t, want, ids)
	assert.Equal(t, models.AvailabilityUnavailable, s1.AvailabilityStatus)
	assert.Equal(t, models.AvailabilityAvailable, s2.AvailabilityStatus)

	// The owner asserted this set; republishing it would loop forever.
	assert.Empty(t, pub.updated)
}

func TestHandleBarberEventExplicitEmptySetUnassigns(t *testing.T) {
	sync, store, pub := newSyncFixture()

	s1 := store.addService("Haircut", models.SystemActive)
	store.relate(s1.ID, "b1")
	s1.AvailabilityStatus = models.AvailabilityAvailable

	err := sync.HandleBarberEvent(BarberEventInput{
		ID:                "b1",
		Name:              "Ana",
		Active:            true,
		RelatedServiceIDs: []uuid.UUID{},
		RelationsProvided: true,
	})
	require.NoError(t, err)

	ids, _ := store.Relations().ServiceIDsForBarber("b1")
	assert.Empty(t, ids)
	assert.Equal(t, models.AvailabilityUnavailable, s1.AvailabilityStatus)
	assert.Empty(t, pub.updated)
}

func TestHandleBarberEventReplayDoesNotRepublish(t *testing.T) {
	sync, store, pub := newSyncFixture()

	store.addService("Haircut", models.SystemActive)

	in := BarberEventInput{ID: "b1", Name: "Ana", Active: true}
	require.NoError(t, sync.HandleBarberEvent(in))
	firstPublishes := len(pub.updated)
	assert.Equal(t, 1, firstPublishes)

	// Replaying the same event finds every relation already in place.
	require.NoError(t, sync.HandleBarberEvent(in))
	assert.Len(t, pub.updated, firstPublishes)
}

func TestHandleReservationEventMirrorsReservation(t *testing.T) {
	sync, store, _ := newSyncFixture()

	svc := store.addService("Haircut", models.SystemActive)
	start := time.Now().Add(24 * time.Hour)

	reason, err := sync.HandleReservationEvent(ReservationEventInput{
		ID:        "r1",
		ServiceID: svc.ID,
		BarberID:  "b1",
		Start:     start,
		Status:    "CONFIRMED_PENDING",
		Version:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, DropNone, reason)

	stored := store.reservations["r1"]
	require.NotNil(t, stored)
	assert.Equal(t, models.ReservationConfirmedPending, stored.Status)
	assert.Equal(t, svc.ID, stored.ServiceID)
}

func TestHandleReservationEventDropsOrphan(t *testing.T) {
	sync, store, _ := newSyncFixture()

	reason, err := sync.HandleReservationEvent(ReservationEventInput{
		ID:        "r1",
		ServiceID: uuid.New(),
		Status:    "CONFIRMED_PENDING",
	})
	require.NoError(t, err)
	assert.Equal(t, DropOrphanService, reason)
	assert.Empty(t, store.reservations)
}

func TestHandleReservationEventDropsUnknownStatus(t *testing.T) {
	sync, store, _ := newSyncFixture()

	svc := store.addService("Haircut", models.SystemActive)
	reason, err := sync.HandleReservationEvent(ReservationEventInput{
		ID:        "r1",
		ServiceID: svc.ID,
		Status:    "TELEPORTED",
	})
	require.NoError(t, err)
	assert.Equal(t, DropUnknownStatus, reason)
	assert.Empty(t, store.reservations)
}

func TestHandleReservationEventDropsStaleVersion(t *testing.T) {
	sync, store, _ := newSyncFixture()

	svc := store.addService("Haircut", models.SystemActive)
	newer := ReservationEventInput{
		ID:        "r1",
		ServiceID: svc.ID,
		Status:    "IN_PROGRESS",
		Version:   5,
	}
	reason, err := sync.HandleReservationEvent(newer)
	require.NoError(t, err)
	require.Equal(t, DropNone, reason)

	stale := newer
	stale.Status = "CONFIRMED_PENDING"
	stale.Version = 3
	reason, err = sync.HandleReservationEvent(stale)
	require.NoError(t, err)
	assert.Equal(t, DropStaleVersion, reason)

	assert.Equal(t, models.ReservationInProgress, store.reservations["r1"].Status)
}

func TestHandleReservationEventZeroVersionAlwaysApplies(t *testing.T) {
	sync, store, _ := newSyncFixture()

	svc := store.addService("Haircut", models.SystemActive)
	_, err := sync.HandleReservationEvent(ReservationEventInput{
		ID:        "r1",
		ServiceID: svc.ID,
		Status:    "IN_PROGRESS",
		Version:   5,
	})
	require.NoError(t, err)

	// Producers that do not version their events send zero; the guard must
	// not reject them.
	reason, err := sync.HandleReservationEvent(ReservationEventInput{
		ID:        "r1",
		ServiceID: svc.ID,
		Status:    "FINISHED",
		Version:   0,
	})
	require.NoError(t, err)
	assert.Equal(t, DropNone, reason)
	assert.Equal(t, models.ReservationFinished, store.reservations["r1"].Status)
}
