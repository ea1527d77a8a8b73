package ports

import (
	"context"
	"time"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// ExpenseFilter narrows an expense listing. UserID is mandatory; the other
// fields are optional and combined with AND. Dates are inclusive.
type ExpenseFilter struct {
	UserID     int64
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// ExpenseRepository defines persistence operations for expenses.
// Update and Delete only touch rows owned by the given user.
type ExpenseRepository interface {
	List(ctx context.Context, filter ExpenseFilter) ([]domain.ExpenseView, error)
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id, userID int64) error
}
