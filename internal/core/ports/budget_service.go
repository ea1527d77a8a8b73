package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// SetBudgetInput carries a budget upsert. Month may be any day of the target
// month.
type SetBudgetInput struct {
	UserID     int64
	CategoryID int64
	Limit      decimal.Decimal
	Month      time.Time
}

// BudgetService is the budget aggregator.
type BudgetService interface {
	// ResolveBudgets returns the active budget per category for month (the
	// current month when nil) with realised spend and status.
	ResolveBudgets(ctx context.Context, userID int64, month *time.Time) ([]domain.BudgetView, error)
	SetBudget(ctx context.Context, in SetBudgetInput) error
	DeleteBudget(ctx context.Context, budgetID, userID int64) error
}
