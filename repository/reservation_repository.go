package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"services-backend/models"
)

type reservationRepository struct {
	db *gorm.DB
}

func (r *reservationRepository) FindByID(id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Upsert(res *models.Reservation) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(res).Error
}

func (r *reservationRepository) ExistsBlockingForService(serviceID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reservation{}).
		Where("service_id = ? AND status IN ?", serviceID, models.BlockingReservationStatuses).
		Count(&count).Error
	return count > 0, err
}
