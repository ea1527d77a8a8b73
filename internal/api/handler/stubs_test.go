package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

// newContext builds an echo context for a JSON request. userID > 0 simulates
// the Auth middleware.
func newContext(method, target, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID > 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	return resp
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- service stubs ---

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubAccountService struct {
	getUserFn         func(ctx context.Context, id int64) (*domain.User, error)
	listUsersFn       func(ctx context.Context) ([]domain.User, error)
	updateAllowanceFn func(ctx context.Context, id int64, amount decimal.Decimal) error
	updateProfileFn   func(ctx context.Context, id int64, in ports.ProfileInput) (*domain.User, error)
	adminUpdateFn     func(ctx context.Context, actorID int64, in ports.AdminUpdateUserInput) error
	toggleFn          func(ctx context.Context, actorID, id int64) (domain.UserStatus, error)
	setStatusFn       func(ctx context.Context, actorID, id int64, status string) error
	adminDeleteFn     func(ctx context.Context, actorID, id int64) error
	deleteAccountFn   func(ctx context.Context, id int64) error
	userStatsFn       func(ctx context.Context, id int64) (*domain.UserStatistics, error)
	systemStatsFn     func(ctx context.Context) (*domain.SystemStats, error)
}

func (s *stubAccountService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUserFn(ctx, id)
}

func (s *stubAccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.listUsersFn(ctx)
}

func (s *stubAccountService) UpdateAllowance(ctx context.Context, id int64, amount decimal.Decimal) error {
	return s.updateAllowanceFn(ctx, id, amount)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, id int64, in ports.ProfileInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, id, in)
}

func (s *stubAccountService) AdminUpdateUser(ctx context.Context, actorID int64, in ports.AdminUpdateUserInput) error {
	return s.adminUpdateFn(ctx, actorID, in)
}

func (s *stubAccountService) ToggleUserStatus(ctx context.Context, actorID, id int64) (domain.UserStatus, error) {
	return s.toggleFn(ctx, actorID, id)
}

func (s *stubAccountService) SetUserStatus(ctx context.Context, actorID, id int64, status string) error {
	return s.setStatusFn(ctx, actorID, id, status)
}

func (s *stubAccountService) AdminDeleteUser(ctx context.Context, actorID, id int64) error {
	return s.adminDeleteFn(ctx, actorID, id)
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, id int64) error {
	return s.deleteAccountFn(ctx, id)
}

func (s *stubAccountService) UserStatistics(ctx context.Context, id int64) (*domain.UserStatistics, error) {
	return s.userStatsFn(ctx, id)
}

func (s *stubAccountService) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	return s.systemStatsFn(ctx)
}

type stubCategoryService struct {
	listFn      func(ctx context.Context) ([]domain.Category, error)
	listUsageFn func(ctx context.Context) ([]domain.CategoryUsage, error)
	getFn       func(ctx context.Context, id int64) (*domain.Category, error)
	createFn    func(ctx context.Context, name, icon string) (*domain.Category, error)
	updateFn    func(ctx context.Context, id int64, name, icon string) error
	deleteFn    func(ctx context.Context, id int64) error
}

func (s *stubCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) ListCategoriesWithUsage(ctx context.Context) ([]domain.CategoryUsage, error) {
	return s.listUsageFn(ctx)
}

func (s *stubCategoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.getFn(ctx, id)
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, name, icon string) (*domain.Category, error) {
	return s.createFn(ctx, name, icon)
}

func (s *stubCategoryService) UpdateCategory(ctx context.Context, id int64, name, icon string) error {
	return s.updateFn(ctx, id, name, icon)
}

func (s *stubCategoryService) DeleteCategory(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubExpenseService struct {
	listFn   func(ctx context.Context, f ports.ExpenseFilter) ([]domain.ExpenseView, error)
	addFn    func(ctx context.Context, in ports.ExpenseInput) (*ports.ExpenseResult, error)
	updateFn func(ctx context.Context, in ports.ExpenseInput) error
	deleteFn func(ctx context.Context, id, userID int64) error
}

func (s *stubExpenseService) ListExpenses(ctx context.Context, f ports.ExpenseFilter) ([]domain.ExpenseView, error) {
	return s.listFn(ctx, f)
}

func (s *stubExpenseService) AddExpense(ctx context.Context, in ports.ExpenseInput) (*ports.ExpenseResult, error) {
	return s.addFn(ctx, in)
}

func (s *stubExpenseService) UpdateExpense(ctx context.Context, in ports.ExpenseInput) error {
	return s.updateFn(ctx, in)
}

func (s *stubExpenseService) DeleteExpense(ctx context.Context, id, userID int64) error {
	return s.deleteFn(ctx, id, userID)
}

type stubBudgetService struct {
	resolveFn func(ctx context.Context, userID int64, month *time.Time) ([]domain.BudgetView, error)
	setFn     func(ctx context.Context, in ports.SetBudgetInput) error
	deleteFn  func(ctx context.Context, budgetID, userID int64) error
}

func (s *stubBudgetService) ResolveBudgets(ctx context.Context, userID int64, month *time.Time) ([]domain.BudgetView, error) {
	return s.resolveFn(ctx, userID, month)
}

func (s *stubBudgetService) SetBudget(ctx context.Context, in ports.SetBudgetInput) error {
	return s.setFn(ctx, in)
}

func (s *stubBudgetService) DeleteBudget(ctx context.Context, budgetID, userID int64) error {
	return s.deleteFn(ctx, budgetID, userID)
}
