package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"services-backend/models"
)

type categoryRepository struct {
	db *gorm.DB
}

func (r *categoryRepository) FindByID(id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) FindAll() ([]*models.Category, error) {
	var out []*models.Category
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepository) Save(c *models.Category) error {
	return r.db.Save(c).Error
}
