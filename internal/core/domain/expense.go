package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spend event owned by one user.
type Expense struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseView is an expense joined with its category for display. The
// category fields are not persisted on the expense row.
type ExpenseView struct {
	Expense
	CategoryName string `json:"category_name"`
	CategoryIcon string `json:"category_icon"`
}

// ValidAmount reports whether d is a non-negative money value with at most two
// decimal places.
func ValidAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2))
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
