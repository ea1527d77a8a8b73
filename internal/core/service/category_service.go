package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type categoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

// NewCategoryService returns a CategoryService implementation.
func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) ports.CategoryService {
	return &categoryService{repo: repo, log: log}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) ListCategoriesWithUsage(ctx context.Context) ([]domain.CategoryUsage, error) {
	categories, err := s.repo.ListWithUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories with usage: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, name, icon string) (*domain.Category, error) {
	name, icon = strings.TrimSpace(name), strings.TrimSpace(icon)
	if name == "" || icon == "" {
		return nil, domain.ErrInvalidInput
	}
	created, err := s.repo.Create(ctx, &domain.Category{Name: name, Icon: icon})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.log.Info().Int64("category_id", created.ID).Str("name", name).Msg("category created")
	return created, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, name, icon string) error {
	name, icon = strings.TrimSpace(name), strings.TrimSpace(icon)
	if name == "" || icon == "" {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Update(ctx, &domain.Category{ID: id, Name: name, Icon: icon}); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// DeleteCategory checks usage before deleting. The check and the delete are
// not atomic; an expense inserted in between can be orphaned.
func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	usage, err := s.repo.CountUsage(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if usage > 0 {
		return fmt.Errorf("delete category: %w (%d expenses)", domain.ErrCategoryInUse, usage)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.log.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}
