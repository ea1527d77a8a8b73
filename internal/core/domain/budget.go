package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus is the tier derived from the spent percentage.
type BudgetStatus string

const (
	BudgetOnTrack    BudgetStatus = "On Track"
	BudgetWarning    BudgetStatus = "Warning"
	BudgetOverBudget BudgetStatus = "Over Budget"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// Budget is a stored (user, category, month, limit) row.
type Budget struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	CategoryID int64           `json:"category_id"`
	Limit      decimal.Decimal `json:"budget_limit"`
	Month      time.Time       `json:"month"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BudgetView is the active budget for a category joined with the realised
// spend for the same user, category and calendar month.
type BudgetView struct {
	Budget
	Spent        decimal.Decimal
	CategoryName string
	CategoryIcon string
}

// Remaining is limit minus spent. It goes negative once the budget is exceeded.
func (b BudgetView) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Spent)
}

// Percentage is spent/limit×100, or zero when the limit is not positive.
func (b BudgetView) Percentage() decimal.Decimal {
	if !b.Limit.IsPositive() {
		return decimal.Zero
	}
	return b.Spent.Mul(hundred).Div(b.Limit)
}

// Status classifies the spent percentage.
func (b BudgetView) Status() BudgetStatus {
	return StatusForPercentage(b.Percentage())
}

// StatusForPercentage maps a percentage onto its tier: 100 and above is over
// budget, 80 up to 100 is a warning, everything else is on track.
func StatusForPercentage(pct decimal.Decimal) BudgetStatus {
	switch {
	case pct.GreaterThanOrEqual(hundred):
		return BudgetOverBudget
	case pct.GreaterThanOrEqual(warningThreshold):
		return BudgetWarning
	default:
		return BudgetOnTrack
	}
}

// MonthStart normalises t to 00:00 UTC on the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the half-open [start, end) interval covering the
// calendar month of t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := MonthStart(t)
	return start, start.AddDate(0, 1, 0)
}
