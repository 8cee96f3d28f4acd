package services

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"services-backend/models"
)

// In-memory repository set backing the service-layer tests. One fakeStore
// plays the role of the database; the per-interface wrappers all share it, the
// same way the real provider hands out repositories bound to one transaction.
type fakeStore struct {
	services     map[uuid.UUID]*models.Service
	relations    map[uuid.UUID]map[string]bool
	barbers      map[string]*models.Barber
	reservations map[string]*models.Reservation
	categories   map[uuid.UUID]*models.Category
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		services:     map[uuid.UUID]*models.Service{},
		relations:    map[uuid.UUID]map[string]bool{},
		barbers:      map[string]*models.Barber{},
		reservations: map[string]*models.Reservation{},
		categories:   map[uuid.UUID]*models.Category{},
	}
}

func (f *fakeStore) Services() ServiceRepository         { return &fakeServiceRepo{f} }
func (f *fakeStore) Relations() RelationRepository       { return &fakeRelationRepo{f} }
func (f *fakeStore) Barbers() BarberRepository           { return &fakeBarberRepo{f} }
func (f *fakeStore) Reservations() ReservationRepository { return &fakeReservationRepo{f} }
func (f *fakeStore) Categories() CategoryRepository      { return &fakeCategoryRepo{f} }

// Do runs fn directly against the shared store. Rollback is not modelled; the
// tests assert on behavior, not transactionality.
func (f *fakeStore) Do(fn func(repos RepositoryProvider) error) error {
	return fn(f)
}

func (f *fakeStore) addService(name string, system models.SystemStatus) *models.Service {
	svc := &models.Service{
		ID:                 uuid.New(),
		Name:               name,
		Description:        name,
		Duration:           30,
		AvailabilityStatus: models.AvailabilityUnavailable,
		SystemStatus:       system,
	}
	f.services[svc.ID] = svc
	return svc
}

func (f *fakeStore) addBarber(id string, active bool) *models.Barber {
	b := &models.Barber{ID: id, Name: "Barber " + id, Active: active}
	f.barbers[id] = b
	return b
}

func (f *fakeStore) addCategory(name string) *models.Category {
	c := &models.Category{ID: uuid.New(), Name: name}
	f.categories[c.ID] = c
	return c
}

func (f *fakeStore) relate(serviceID uuid.UUID, barberID string) {
	if f.relations[serviceID] == nil {
		f.relations[serviceID] = map[string]bool{}
	}
	f.relations[serviceID][barberID] = true
}

type fakeServiceRepo struct{ s *fakeStore }

func (r *fakeServiceRepo) FindByID(id uuid.UUID) (*models.Service, error) {
	return r.s.services[id], nil
}

func (r *fakeServiceRepo) FindByIDs(ids []uuid.UUID) ([]*models.Service, error) {
	var out []*models.Service
	for _, id := range ids {
		if svc, ok := r.s.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) FindByNameIgnoreCase(name string) (*models.Service, error) {
	for _, svc := range r.s.services {
		if strings.EqualFold(svc.Name, name) {
			return svc, nil
		}
	}
	return nil, nil
}

func (r *fakeServiceRepo) ExistsByNameExcludingID(name string, id uuid.UUID) (bool, error) {
	for _, svc := range r.s.services {
		if svc.ID != id && strings.EqualFold(svc.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeServiceRepo) FindAll(includeInactive bool) ([]*models.Service, error) {
	var out []*models.Service
	for _, svc := range r.s.services {
		if !includeInactive && svc.SystemStatus != models.SystemActive {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeServiceRepo) FindAllActive() ([]*models.Service, error) {
	return r.FindAll(false)
}

func (r *fakeServiceRepo) Save(svc *models.Service) error {
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	r.s.services[svc.ID] = svc
	return nil
}

type fakeRelationRepo struct{ s *fakeStore }

func (r *fakeRelationRepo) Exists(serviceID uuid.UUID, barberID string) (bool, error) {
	return r.s.relations[serviceID][barberID], nil
}

func (r *fakeRelationRepo) Add(serviceID uuid.UUID, barberID string) error {
	r.s.relate(serviceID, barberID)
	return nil
}

func (r *fakeRelationRepo) Remove(serviceID uuid.UUID, barberID string) error {
	delete(r.s.relations[serviceID], barberID)
	return nil
}

func (r *fakeRelationRepo) RemoveAllForService(serviceID uuid.UUID) error {
	delete(r.s.relations, serviceID)
	return nil
}

func (r *fakeRelationRepo) ServiceIDsForBarber(barberID string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for serviceID, barbers := range r.s.relations {
		if barbers[barberID] {
			out = append(out, serviceID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func (r *fakeRelationRepo) BarberIDsForService(serviceID uuid.UUID) ([]string, error) {
	var out []string
	for barberID := range r.s.relations[serviceID] {
		out = append(out, barberID)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeRelationRepo) CountForService(serviceID uuid.UUID) (int64, error) {
	return int64(len(r.s.relations[serviceID])), nil
}

type fakeBarberRepo struct{ s *fakeStore }

func (r *fakeBarberRepo) FindByID(id string) (*models.Barber, error) {
	return r.s.barbers[id], nil
}

func (r *fakeBarberRepo) FindByIDs(ids []string) ([]*models.Barber, error) {
	var out []*models.Barber
	for _, id := range ids {
		if b, ok := r.s.barbers[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBarberRepo) Upsert(b *models.Barber) error {
	r.s.barbers[b.ID] = b
	return nil
}

type fakeReservationRepo struct{ s *fakeStore }

func (r *fakeReservationRepo) FindByID(id string) (*models.Reservation, error) {
	return r.s.reservations[id], nil
}

func (r *fakeReservationRepo) Upsert(res *models.Reservation) error {
	r.s.reservations[res.ID] = res
	return nil
}

func (r *fakeReservationRepo) ExistsBlockingForService(serviceID uuid.UUID) (bool, error) {
	for _, res := range r.s.reservations {
		if res.ServiceID == serviceID && res.Status.Blocking() {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategoryRepo struct{ s *fakeStore }

func (r *fakeCategoryRepo) FindByID(id uuid.UUID) (*models.Category, error) {
	return r.s.categories[id], nil
}

func (r *fakeCategoryRepo) ExistsByName(name string) (bool, error) {
	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) FindAll() ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Save(c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.categories[c.ID] = c
	return nil
}

// fakePublisher records outbound events so tests can assert on echo behavior.
type fakePublisher struct {
	created     []uuid.UUID
	updated     []publishedUpdate
	inactivated []uuid.UUID
}

type publishedUpdate struct {
	ServiceID uuid.UUID
	BarberIDs []string
}

func (p *fakePublisher) ServiceCreated(s *models.Service, barberIDs []string) {
	p.created = append(p.created, s.ID)
}

func (p *fakePublisher) ServiceUpdated(s *models.Service, barberIDs []string) {
	p.updated = append(p.updated, publishedUpdate{ServiceID: s.ID, BarberIDs: barberIDs})
}

func (p *fakePublisher) ServiceInactivated(id uuid.UUID) {
	p.inactivated = append(p.inactivated, id)
}
