package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type ExpenseRepository struct {
	gw *Gateway
}

func NewExpenseRepository(gw *Gateway) *ExpenseRepository {
	return &ExpenseRepository{gw: gw}
}

var _ ports.ExpenseRepository = (*ExpenseRepository)(nil)

// List applies the optional filters with AND and returns newest first.
func (r *ExpenseRepository) List(ctx context.Context, f ports.ExpenseFilter) ([]domain.ExpenseView, error) {
	var (
		sb   strings.Builder
		args = []any{f.UserID}
	)
	sb.WriteString(`SELECT e.id, e.user_id, e.category_id, e.amount, e.expense_date, e.description, e.created_at, c.name, c.icon
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = ?`)
	if f.CategoryID != nil {
		sb.WriteString(` AND e.category_id = ?`)
		args = append(args, *f.CategoryID)
	}
	if f.StartDate != nil {
		sb.WriteString(` AND e.expense_date >= ?`)
		args = append(args, domain.DateOnly(*f.StartDate))
	}
	if f.EndDate != nil {
		sb.WriteString(` AND e.expense_date <= ?`)
		args = append(args, domain.DateOnly(*f.EndDate))
	}
	sb.WriteString(` ORDER BY e.expense_date DESC, e.created_at DESC, e.id DESC`)

	var expenses []domain.ExpenseView
	err := r.gw.conn(ctx, func(q querier) error {
		rows, err := q.QueryContext(ctx, sb.String(), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				v    domain.ExpenseView
				desc sql.NullString
			)
			if err := rows.Scan(&v.ID, &v.UserID, &v.CategoryID, &v.Amount, &v.ExpenseDate, &desc,
				&v.CreatedAt, &v.CategoryName, &v.CategoryIcon); err != nil {
				return err
			}
			v.Description = stringPtr(desc)
			expenses = append(expenses, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	created := *e
	err := r.gw.conn(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`INSERT INTO expenses (user_id, category_id, amount, expense_date, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.UserID, e.CategoryID, e.Amount, domain.DateOnly(e.ExpenseDate), nullString(e.Description), e.CreatedAt.UTC())
		if err != nil {
			return err
		}
		created.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return &created, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	var res sql.Result
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		res, err = q.ExecContext(ctx,
			`UPDATE expenses SET category_id = ?, amount = ?, expense_date = ?, description = ?
			 WHERE id = ? AND user_id = ?`,
			e.CategoryID, e.Amount, domain.DateOnly(e.ExpenseDate), nullString(e.Description), e.ID, e.UserID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireAffected(res, domain.ErrExpenseNotFound)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID int64) error {
	var res sql.Result
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		res, err = q.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireAffected(res, domain.ErrExpenseNotFound)
}
