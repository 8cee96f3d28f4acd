package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"services-backend/models"
)

// CategoryService manages the service categories. Categories are purely
// local: the event subsystem never reads or writes them.
type CategoryService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

func NewCategoryService(uow UnitOfWork, logger *zap.Logger) *CategoryService {
	return &CategoryService{uow: uow, logger: logger}
}

func (s *CategoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	var category *models.Category
	err := s.uow.Do(func(repos RepositoryProvider) error {
		exists, err := repos.Categories().ExistsByName(name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("category %q: %w", name, ErrAlreadyExists)
		}
		category = &models.Category{Name: name}
		return repos.Categories().Save(category)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.String("categoryId", category.ID.String()), zap.String("name", name))
	return category, nil
}

func (s *CategoryService) List() ([]*models.Category, error) {
	var out []*models.Category
	err := s.uow.Do(func(repos RepositoryProvider) error {
		var err error
		out, err = repos.Categories().FindAll()
		return err
	})
	return out, err
}
