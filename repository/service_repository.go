package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"services-backend/models"
)

type serviceRepository struct {
	db *gorm.DB
}

func (r *serviceRepository) FindByID(id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	err := r.db.Preload("Barbers").Preload("Category").First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindByIDs(ids []uuid.UUID) ([]*models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []*models.Service
	if err := r.db.Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceRepository) FindByNameIgnoreCase(name string) (*models.Service, error) {
	var svc models.Service
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) ExistsByNameExcludingID(name string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Service{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
		Count(&count).Error
	return count > 0, err
}

func (r *serviceRepository) FindAll(includeInactive bool) ([]*models.Service, error) {
	q := r.db.Preload("Barbers").Preload("Category")
	if !includeInactive {
		q = q.Where("system_status = ?", models.SystemActive)
	}
	var out []*models.Service
	if err := q.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceRepository) FindAllActive() ([]*models.Service, error) {
	var out []*models.Service
	err := r.db.Where("system_status = ?", models.SystemActive).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceRepository) Save(s *models.Service) error {
	// Persist scalar columns only; the barber relation is owned by the
	// relation repository and must not be written through the association.
	return r.db.Omit("Barbers", "Category").Save(s).Error
}
