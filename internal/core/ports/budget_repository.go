package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// BudgetRepository defines persistence operations for monthly budgets.
// Every month argument must already be normalised with domain.MonthStart.
type BudgetRepository interface {
	// ResolveForMonth returns, per category, the highest-id budget stored for
	// exactly this month, joined with the user's spend in that calendar month
	// and ordered by category name.
	ResolveForMonth(ctx context.Context, userID int64, month time.Time) ([]domain.BudgetView, error)
	// FindIDByKey returns the highest budget id for (user, category, month).
	FindIDByKey(ctx context.Context, userID, categoryID int64, month time.Time) (id int64, found bool, err error)
	UpdateLimit(ctx context.Context, id int64, limit decimal.Decimal) error
	Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error)
	Delete(ctx context.Context, id, userID int64) error
}
