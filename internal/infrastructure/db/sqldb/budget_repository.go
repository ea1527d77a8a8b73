package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type BudgetRepository struct {
	gw *Gateway
}

func NewBudgetRepository(gw *Gateway) *BudgetRepository {
	return &BudgetRepository{gw: gw}
}

var _ ports.BudgetRepository = (*BudgetRepository)(nil)

// resolveQuery picks the highest-id row per category for the month and sums
// the user's expenses in [month, next month) for that category.
const resolveQuery = `
SELECT b.id, b.user_id, b.category_id, b.budget_limit, b.month, b.created_at, c.name, c.icon,
       COALESCE((SELECT SUM(e.amount)
                 FROM expenses e
                 WHERE e.user_id = b.user_id
                   AND e.category_id = b.category_id
                   AND e.expense_date >= ?
                   AND e.expense_date < ?), 0) AS spent
FROM budgets b
JOIN categories c ON c.id = b.category_id
WHERE b.user_id = ?
  AND b.month = ?
  AND b.id IN (SELECT MAX(id) FROM budgets WHERE user_id = ? AND month = ? GROUP BY category_id)
ORDER BY c.name`

func (r *BudgetRepository) ResolveForMonth(ctx context.Context, userID int64, month time.Time) ([]domain.BudgetView, error) {
	start, end := domain.MonthRange(month)

	var views []domain.BudgetView
	err := r.gw.conn(ctx, func(q querier) error {
		rows, err := q.QueryContext(ctx, resolveQuery, start, end, userID, start, userID, start)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var v domain.BudgetView
			if err := rows.Scan(&v.ID, &v.UserID, &v.CategoryID, &v.Limit, &v.Month, &v.CreatedAt,
				&v.CategoryName, &v.CategoryIcon, &v.Spent); err != nil {
				return err
			}
			// SQLite sums DECIMAL columns as REAL.
			v.Spent = v.Spent.Round(2)
			views = append(views, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("resolve budgets: %w", err)
	}
	return views, nil
}

func (r *BudgetRepository) FindIDByKey(ctx context.Context, userID, categoryID int64, month time.Time) (int64, bool, error) {
	var id sql.NullInt64
	err := r.gw.conn(ctx, func(q querier) error {
		return q.QueryRowContext(ctx,
			`SELECT MAX(id) FROM budgets WHERE user_id = ? AND category_id = ? AND month = ?`,
			userID, categoryID, domain.MonthStart(month),
		).Scan(&id)
	})
	if err != nil {
		return 0, false, fmt.Errorf("find budget: %w", err)
	}
	return id.Int64, id.Valid, nil
}

func (r *BudgetRepository) UpdateLimit(ctx context.Context, id int64, limit decimal.Decimal) error {
	var res sql.Result
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		res, err = q.ExecContext(ctx, `UPDATE budgets SET budget_limit = ? WHERE id = ?`, limit, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireAffected(res, domain.ErrBudgetNotFound)
}

func (r *BudgetRepository) Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	created := *b
	created.Month = domain.MonthStart(b.Month)
	err := r.gw.conn(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`INSERT INTO budgets (user_id, category_id, budget_limit, month, created_at) VALUES (?, ?, ?, ?, ?)`,
			b.UserID, b.CategoryID, b.Limit, created.Month, b.CreatedAt.UTC())
		if err != nil {
			return err
		}
		created.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert budget: %w", err)
	}
	return &created, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id, userID int64) error {
	var res sql.Result
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		res, err = q.ExecContext(ctx, `DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireAffected(res, domain.ErrBudgetNotFound)
}
