package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// errorResponse documents the failure envelope for swag.
type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"category not found"`
}

// --- Auth ---

type registerRequest struct {
	FirstName        string          `json:"first_name"        validate:"required,max=100"`
	LastName         string          `json:"last_name"         validate:"max=100"`
	Email            string          `json:"email"             validate:"required,email"`
	Password         string          `json:"password"          validate:"required,min=6"`
	StudentID        *string         `json:"student_id"        validate:"omitempty,max=50"`
	MonthlyAllowance decimal.Decimal `json:"monthly_allowance" swaggertype:"string" example:"5000.00"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

// --- Account ---

type profileRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name"  validate:"max=100"`
	StudentID *string `json:"student_id" validate:"omitempty,max=50"`
}

type allowanceRequest struct {
	MonthlyAllowance decimal.Decimal `json:"monthly_allowance" swaggertype:"string" example:"5000.00"`
}

type adminUpdateUserRequest struct {
	Email            string          `json:"email"             validate:"required,email"`
	FirstName        string          `json:"first_name"        validate:"required,max=100"`
	LastName         string          `json:"last_name"         validate:"max=100"`
	StudentID        *string         `json:"student_id"        validate:"omitempty,max=50"`
	MonthlyAllowance decimal.Decimal `json:"monthly_allowance" swaggertype:"string"`
	Status           string          `json:"status"            validate:"required,oneof=active inactive"`
	Password         string          `json:"password"          validate:"omitempty,min=6"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type statusResponse struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

// --- Categories ---

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"required,max=50"`
}

// --- Expenses ---

type expenseRequest struct {
	CategoryID  int64           `json:"category_id"  validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"       swaggertype:"string" example:"125.50"`
	ExpenseDate string          `json:"expense_date" validate:"required,datetime=2006-01-02" example:"2024-03-15"`
	Description *string         `json:"description"  validate:"omitempty,max=255"`
}

type expenseResponse struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	CategoryIcon string          `json:"category_icon,omitempty"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string"`
	ExpenseDate  string          `json:"expense_date"`
	Description  *string         `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// --- Budgets ---

type budgetRequest struct {
	CategoryID  int64           `json:"category_id"  validate:"required,gt=0"`
	BudgetLimit decimal.Decimal `json:"budget_limit" swaggertype:"string" example:"1500.00"`
	// Month accepts YYYY-MM or any YYYY-MM-DD inside the month.
	Month string `json:"month" validate:"required" example:"2024-03"`
}

type budgetResponse struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	CategoryIcon string          `json:"category_icon"`
	Month        string          `json:"month"`
	BudgetLimit  decimal.Decimal `json:"budget_limit" swaggertype:"string"`
	Spent        decimal.Decimal `json:"spent"        swaggertype:"string"`
	Remaining    decimal.Decimal `json:"remaining"    swaggertype:"string"`
	Percentage   float64         `json:"percentage"`
	Status       string          `json:"status"`
}
