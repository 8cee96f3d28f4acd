package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"services-backend/models"
)

type barberRepository struct {
	db *gorm.DB
}

func (r *barberRepository) FindByID(id string) (*models.Barber, error) {
	var b models.Barber
	err := r.db.First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *barberRepository) FindByIDs(ids []string) ([]*models.Barber, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []*models.Barber
	if err := r.db.Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert creates or overwrites the mirror row wholesale; core fields are
// never patched partially.
func (r *barberRepository) Upsert(b *models.Barber) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(b).Error
}
