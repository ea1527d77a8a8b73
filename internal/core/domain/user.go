package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserStatus is the enabled/disabled flag an administrator controls.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User models a registered student account.
type User struct {
	ID               int64           `json:"id"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	Email            string          `json:"email"`
	PasswordHash     string          `json:"-"`
	StudentID        *string         `json:"student_id,omitempty"`
	MonthlyAllowance decimal.Decimal `json:"monthly_allowance"`
	Status           UserStatus      `json:"status"`
	Role             string          `json:"role"`
	CreatedAt        time.Time       `json:"created_at"`
}

// UserStatistics summarises one user's activity.
type UserStatistics struct {
	UserID       int64           `json:"user_id"`
	ExpenseCount int64           `json:"expense_count"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	BudgetCount  int64           `json:"budget_count"`
}

// SystemStats summarises the whole installation for administrators.
type SystemStats struct {
	TotalUsers      int64           `json:"total_users"`
	ActiveUsers     int64           `json:"active_users"`
	AdminUsers      int64           `json:"admin_users"`
	TotalExpenses   int64           `json:"total_expenses"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	TotalCategories int64           `json:"total_categories"`
}
