package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	FirstName        string
	LastName         string
	Email            string
	Password         string
	StudentID        *string
	MonthlyAllowance decimal.Decimal
}

// AuthService handles registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
