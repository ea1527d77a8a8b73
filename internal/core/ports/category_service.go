package ports

import (
	"context"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// CategoryService is the category directory.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCategoriesWithUsage(ctx context.Context) ([]domain.CategoryUsage, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, name, icon string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, icon string) error
	// DeleteCategory refuses with domain.ErrCategoryInUse while any expense
	// references the category.
	DeleteCategory(ctx context.Context, id int64) error
}
