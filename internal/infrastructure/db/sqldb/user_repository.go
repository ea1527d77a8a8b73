package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

const userColumns = `id, first_name, last_name, email, password, student_id, monthly_allowance, status, role, created_at`

type UserRepository struct {
	gw *Gateway
}

func NewUserRepository(gw *Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

var _ ports.UserRepository = (*UserRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		studentID sql.NullString
		status    string
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&studentID, &u.MonthlyAllowance, &status, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.StudentID = stringPtr(studentID)
	u.Status = domain.UserStatus(status)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	err := r.gw.conn(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`INSERT INTO users (first_name, last_name, email, password, student_id, monthly_allowance, status, role, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			user.FirstName, user.LastName, user.Email, user.PasswordHash, nullString(user.StudentID),
			user.MonthlyAllowance, string(user.Status), user.Role, user.CreatedAt.UTC())
		if err != nil {
			return err
		}
		created.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var user *domain.User
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		user, err = scanUser(q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int64
	err := r.gw.conn(ctx, func(q querier) error {
		return q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?`, email, excludeID).Scan(&n)
	})
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.gw.conn(ctx, func(q querier) error {
		rows, err := q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			users = append(users, *u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) exec(ctx context.Context, op string, query string, args ...any) error {
	var res sql.Result
	err := r.gw.conn(ctx, func(q querier) error {
		var err error
		res, err = q.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireAffected(res, domain.ErrUserNotFound)
}

func (r *UserRepository) UpdateAllowance(ctx context.Context, id int64, allowance decimal.Decimal) error {
	return r.exec(ctx, "update allowance", `UPDATE users SET monthly_allowance = ? WHERE id = ?`, allowance, id)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string, studentID *string) error {
	return r.exec(ctx, "update profile",
		`UPDATE users SET first_name = ?, last_name = ?, student_id = ? WHERE id = ?`,
		firstName, lastName, nullString(studentID), id)
}

func (r *UserRepository) AdminUpdate(ctx context.Context, u ports.AdminUserUpdate) error {
	if u.PasswordHash == "" {
		return r.exec(ctx, "admin update user",
			`UPDATE users SET email = ?, first_name = ?, last_name = ?, student_id = ?, monthly_allowance = ?, status = ?
			 WHERE id = ?`,
			u.Email, u.FirstName, u.LastName, nullString(u.StudentID), u.MonthlyAllowance, string(u.Status), u.ID)
	}
	return r.exec(ctx, "admin update user",
		`UPDATE users SET email = ?, first_name = ?, last_name = ?, student_id = ?, monthly_allowance = ?, status = ?, password = ?
		 WHERE id = ?`,
		u.Email, u.FirstName, u.LastName, nullString(u.StudentID), u.MonthlyAllowance, string(u.Status), u.PasswordHash, u.ID)
}

func (r *UserRepository) SetStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	return r.exec(ctx, "set status", `UPDATE users SET status = ? WHERE id = ?`, string(status), id)
}

// ToggleStatus flips the status in a single statement and reads the result
// back on the same connection.
func (r *UserRepository) ToggleStatus(ctx context.Context, id int64) (domain.UserStatus, error) {
	var status string
	err := r.gw.conn(ctx, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`UPDATE users SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if err := requireAffected(res, domain.ErrUserNotFound); err != nil {
			return err
		}
		return q.QueryRowContext(ctx, `SELECT status FROM users WHERE id = ?`, id).Scan(&status)
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("toggle status: %w", err)
	}
	return domain.UserStatus(status), nil
}

// DeleteCascade removes expenses, then budgets, then the user row inside one
// transaction. A missing user rolls everything back.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int64) error {
	err := r.gw.tx(ctx, func(q querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM expenses WHERE user_id = ?`, id); err != nil {
			return fmt.Errorf("delete expenses: %w", err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM budgets WHERE user_id = ?`, id); err != nil {
			return fmt.Errorf("delete budgets: %w", err)
		}
		res, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return requireAffected(res, domain.ErrUserNotFound)
	})
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("cascade delete: %w", err)
	}
	return err
}

func (r *UserRepository) Statistics(ctx context.Context, id int64) (*domain.UserStatistics, error) {
	stats := &domain.UserStatistics{UserID: id}
	err := r.gw.conn(ctx, func(q querier) error {
		var exists int64
		if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrUserNotFound
		}
		if err := q.QueryRowContext(ctx,
			`SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ?`, id,
		).Scan(&stats.ExpenseCount, &stats.TotalSpent); err != nil {
			return err
		}
		return q.QueryRowContext(ctx, `SELECT COUNT(*) FROM budgets WHERE user_id = ?`, id).Scan(&stats.BudgetCount)
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("user statistics: %w", err)
	}
	stats.TotalSpent = stats.TotalSpent.Round(2)
	return stats, nil
}

func (r *UserRepository) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	stats := &domain.SystemStats{}
	err := r.gw.conn(ctx, func(q querier) error {
		if err := q.QueryRowContext(ctx,
			`SELECT COUNT(*),
			        COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
			        COALESCE(SUM(CASE WHEN role = 'admin' THEN 1 ELSE 0 END), 0)
			 FROM users`,
		).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.AdminUsers); err != nil {
			return err
		}
		if err := q.QueryRowContext(ctx,
			`SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM expenses`,
		).Scan(&stats.TotalExpenses, &stats.TotalSpent); err != nil {
			return err
		}
		return q.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&stats.TotalCategories)
	})
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}
	stats.TotalSpent = stats.TotalSpent.Round(2)
	return stats, nil
}
