package ports

import (
	"context"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for spending categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	ListWithUsage(ctx context.Context) ([]domain.CategoryUsage, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	// CountUsage returns the number of expenses referencing the category.
	CountUsage(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
