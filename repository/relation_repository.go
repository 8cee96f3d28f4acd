package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"services-backend/models"
)

// relationRepository is the single writer of service_barbers join rows.
type relationRepository struct {
	db *gorm.DB
}

func (r *relationRepository) Exists(serviceID uuid.UUID, barberID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ServiceBarber{}).
		Where("service_id = ? AND barber_id = ?", serviceID, barberID).
		Count(&count).Error
	return count > 0, err
}

func (r *relationRepository) Add(serviceID uuid.UUID, barberID string) error {
	row := models.ServiceBarber{ServiceID: serviceID, BarberID: barberID}
	// Conflict on the composite key means the relation already exists; the
	// add is then a no-op, keeping reconciliation idempotent under races.
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *relationRepository) Remove(serviceID uuid.UUID, barberID string) error {
	return r.db.
		Where("service_id = ? AND barber_id = ?", serviceID, barberID).
		Delete(&models.ServiceBarber{}).Error
}

func (r *relationRepository) RemoveAllForService(serviceID uuid.UUID) error {
	return r.db.Where("service_id = ?", serviceID).Delete(&models.ServiceBarber{}).Error
}

func (r *relationRepository) ServiceIDsForBarber(barberID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.ServiceBarber{}).
		Where("barber_id = ?", barberID).
		Pluck("service_id", &ids).Error
	return ids, err
}

func (r *relationRepository) BarberIDsForService(serviceID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.ServiceBarber{}).
		Where("service_id = ?", serviceID).
		Pluck("barber_id", &ids).Error
	return ids, err
}

func (r *relationRepository) CountForService(serviceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ServiceBarber{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error
	return count, err
}
