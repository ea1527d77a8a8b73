package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// ProfileInput carries the fields a user may change on their own profile.
type ProfileInput struct {
	FirstName string
	LastName  string
	StudentID *string
}

// AdminUpdateUserInput carries an administrator's edit of an account.
// An empty Password keeps the current credential.
type AdminUpdateUserInput struct {
	UserID           int64
	Email            string
	FirstName        string
	LastName         string
	StudentID        *string
	MonthlyAllowance decimal.Decimal
	Status           string
	Password         string
}

// AccountService manages the user account lifecycle.
//
// ToggleUserStatus and SetUserStatus are separate operations:
// the first flips active/inactive server-side, the second applies the status
// the caller supplies.
type AccountService interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateAllowance(ctx context.Context, id int64, allowance decimal.Decimal) error
	UpdateProfile(ctx context.Context, id int64, in ProfileInput) (*domain.User, error)
	AdminUpdateUser(ctx context.Context, actorID int64, in AdminUpdateUserInput) error
	ToggleUserStatus(ctx context.Context, actorID, id int64) (domain.UserStatus, error)
	SetUserStatus(ctx context.Context, actorID, id int64, status string) error
	AdminDeleteUser(ctx context.Context, actorID, id int64) error
	DeleteAccount(ctx context.Context, id int64) error
	UserStatistics(ctx context.Context, id int64) (*domain.UserStatistics, error)
	SystemStats(ctx context.Context) (*domain.SystemStats, error)
}
