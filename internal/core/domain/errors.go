package domain

import "errors"

// Business outcomes. Anything not in this list reaching the API boundary is
// treated as an infrastructure fault.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is used by one or more expenses")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrBudgetNotFound   = errors.New("budget not found")
)

// IsBusiness reports whether err carries one of the business outcome sentinels.
func IsBusiness(err error) bool {
	for _, target := range []error{
		ErrUserNotFound, ErrEmailTaken, ErrInvalidCredentials, ErrAccountInactive,
		ErrForbidden, ErrInvalidInput, ErrCategoryNotFound, ErrCategoryInUse,
		ErrExpenseNotFound, ErrBudgetNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
