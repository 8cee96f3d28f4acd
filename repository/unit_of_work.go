package repository

import (
	"gorm.io/gorm"

	"services-backend/services"
)

// GormUnitOfWork runs each unit of work inside a single database
// transaction. The provider passed to the callback hands out repositories
// bound to that transaction, so all writes commit or roll back together.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(fn func(repos services.RepositoryProvider) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormProvider{tx: tx})
	})
}

type gormProvider struct {
	tx *gorm.DB
}

func (p *gormProvider) Services() services.ServiceRepository {
	return &serviceRepository{db: p.tx}
}

func (p *gormProvider) Relations() services.RelationRepository {
	return &relationRepository{db: p.tx}
}

func (p *gormProvider) Barbers() services.BarberRepository {
	return &barberRepository{db: p.tx}
}

func (p *gormProvider) Reservations() services.ReservationRepository {
	return &reservationRepository{db: p.tx}
}

func (p *gormProvider) Categories() services.CategoryRepository {
	return &categoryRepository{db: p.tx}
}
