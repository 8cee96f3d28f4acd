package main

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"services-backend/config"
	"services-backend/models"
)

// seed inserts the admin login and a starter catalog on an empty database.
// Every insert here is guarded, so restarting the service never duplicates
// rows.
func seed(db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	if cfg.AdminPassword != "" {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			admin := models.User{
				Email:    cfg.AdminEmail,
				Password: cfg.AdminPassword,
				Name:     "Administrator",
			}
			if err := db.Create(&admin).Error; err != nil {
				return err
			}
			logger.Info("admin user created", zap.String("email", cfg.AdminEmail))
		}
	}

	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount > 0 {
		return nil
	}

	categories := map[string]*models.Category{
		"Hair":  {Name: "Hair"},
		"Beard": {Name: "Beard"},
		"Combo": {Name: "Combo"},
	}
	for _, cat := range categories {
		if err := db.Create(cat).Error; err != nil {
			return err
		}
	}

	starter := []models.Service{
		{
			Name:        "Classic Haircut",
			Description: "Scissor cut with wash and styling",
			Price:       decimal.NewFromFloat(25.00),
			Duration:    30,
			CategoryID:  categories["Hair"].ID,
		},
		{
			Name:        "Beard Trim",
			Description: "Shape and trim with hot towel finish",
			Price:       decimal.NewFromFloat(15.00),
			Duration:    20,
			CategoryID:  categories["Beard"].ID,
		},
		{
			Name:        "Cut and Beard Combo",
			Description: "Full haircut plus beard service",
			Price:       decimal.NewFromFloat(35.00),
			Duration:    50,
			CategoryID:  categories["Combo"].ID,
		},
	}
	for i := range starter {
		// No barbers are assigned yet, so every seeded service starts out
		// unavailable until barber events arrive.
		starter[i].AvailabilityStatus = models.AvailabilityUnavailable
		starter[i].SystemStatus = models.SystemActive
		if err := db.Create(&starter[i]).Error; err != nil {
			return err
		}
	}

	logger.Info("starter catalog seeded", zap.Int("services", len(starter)))
	return nil
}
