package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// ExpenseInput carries a new or edited expense. ID is ignored on create.
type ExpenseInput struct {
	ID          int64
	UserID      int64
	CategoryID  int64
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Description *string
	// IdempotencyKey, when set on create, makes retries of the same submission
	// a no-op.
	IdempotencyKey string
}

// ExpenseResult is returned after recording an expense.
type ExpenseResult struct {
	Expense *domain.Expense
	// Replayed is true when the idempotency key had already been used and no
	// new row was written.
	Replayed bool
}

// ExpenseService is the expense ledger.
type ExpenseService interface {
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]domain.ExpenseView, error)
	AddExpense(ctx context.Context, in ExpenseInput) (*ExpenseResult, error)
	UpdateExpense(ctx context.Context, in ExpenseInput) error
	DeleteExpense(ctx context.Context, id, userID int64) error
}
