package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// AdminUserUpdate carries every field an administrator may overwrite.
// PasswordHash is left untouched when empty.
type AdminUserUpdate struct {
	ID               int64
	Email            string
	FirstName        string
	LastName         string
	StudentID        *string
	MonthlyAllowance decimal.Decimal
	Status           domain.UserStatus
	PasswordHash     string
}

// UserRepository defines persistence operations for user accounts.
// Single-row mutations return domain.ErrUserNotFound when no row matched.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// EmailExists reports whether another account (id != excludeID) already uses email.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]domain.User, error)

	UpdateAllowance(ctx context.Context, id int64, allowance decimal.Decimal) error
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string, studentID *string) error
	AdminUpdate(ctx context.Context, update AdminUserUpdate) error
	SetStatus(ctx context.Context, id int64, status domain.UserStatus) error
	// ToggleStatus flips active/inactive in the store and returns the new value.
	ToggleStatus(ctx context.Context, id int64) (domain.UserStatus, error)

	// DeleteCascade removes the user's expenses, budgets and the user row in a
	// single transaction. Nothing is removed when the user does not exist.
	DeleteCascade(ctx context.Context, id int64) error

	Statistics(ctx context.Context, id int64) (*domain.UserStatistics, error)
	SystemStats(ctx context.Context) (*domain.SystemStats, error)
}
