package handler

import (
	"fmt"
	"time"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// --- Domain → Response ---

func toExpenseResponse(v domain.ExpenseView) expenseResponse {
	return expenseResponse{
		ID:           v.ID,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		CategoryIcon: v.CategoryIcon,
		Amount:       v.Amount,
		ExpenseDate:  v.ExpenseDate.Format(dateLayout),
		Description:  v.Description,
		CreatedAt:    v.CreatedAt,
	}
}

func toExpenseResponses(views []domain.ExpenseView) []expenseResponse {
	out := make([]expenseResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toExpenseResponse(v))
	}
	return out
}

func toBudgetResponse(v domain.BudgetView) budgetResponse {
	return budgetResponse{
		ID:           v.ID,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		CategoryIcon: v.CategoryIcon,
		Month:        v.Month.Format(monthLayout),
		BudgetLimit:  v.Limit,
		Spent:        v.Spent,
		Remaining:    v.Remaining(),
		Percentage:   v.Percentage().Round(2).InexactFloat64(),
		Status:       string(v.Status()),
	}
}

// --- Request parsing ---

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a YYYY-MM-DD date", s)
	}
	return t, nil
}

// parseMonth accepts YYYY-MM or YYYY-MM-DD and returns the first of the month.
func parseMonth(s string) (time.Time, error) {
	if t, err := time.Parse(monthLayout, s); err == nil {
		return domain.MonthStart(t), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return domain.MonthStart(t), nil
	}
	return time.Time{}, fmt.Errorf("%q is not a YYYY-MM month", s)
}
