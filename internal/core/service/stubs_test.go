package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errStore = errors.New("store unavailable")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[int64]*domain.User
	nextID  int64
	creates int

	// cascade mirrors what DeleteCascade would touch in the store
	expenses map[int64]int
	budgets  map[int64]int

	stats     map[int64]*domain.UserStatistics
	deleteErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:    make(map[int64]*domain.User),
		expenses: make(map[int64]int),
		budgets:  make(map[int64]int),
		stats:    make(map[int64]*domain.UserStatistics),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	r.creates++
	clone := cloneUser(user)
	clone.ID = r.nextID
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdateAllowance(_ context.Context, id int64, allowance decimal.Decimal) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.MonthlyAllowance = allowance
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, firstName, lastName string, studentID *string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.FirstName, u.LastName, u.StudentID = firstName, lastName, studentID
	return nil
}

func (r *stubUserRepo) AdminUpdate(_ context.Context, in ports.AdminUserUpdate) error {
	u, ok := r.users[in.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Email, u.FirstName, u.LastName = in.Email, in.FirstName, in.LastName
	u.StudentID, u.MonthlyAllowance, u.Status = in.StudentID, in.MonthlyAllowance, in.Status
	if in.PasswordHash != "" {
		u.PasswordHash = in.PasswordHash
	}
	return nil
}

func (r *stubUserRepo) SetStatus(_ context.Context, id int64, status domain.UserStatus) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) ToggleStatus(_ context.Context, id int64) (domain.UserStatus, error) {
	u, ok := r.users[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	if u.Status == domain.StatusActive {
		u.Status = domain.StatusInactive
	} else {
		u.Status = domain.StatusActive
	}
	return u.Status, nil
}

func (r *stubUserRepo) DeleteCascade(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.expenses, id)
	delete(r.budgets, id)
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Statistics(_ context.Context, id int64) (*domain.UserStatistics, error) {
	if _, ok := r.users[id]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if s, ok := r.stats[id]; ok {
		clone := *s
		return &clone, nil
	}
	return &domain.UserStatistics{UserID: id}, nil
}

func (r *stubUserRepo) SystemStats(_ context.Context) (*domain.SystemStats, error) {
	stats := &domain.SystemStats{}
	for _, u := range r.users {
		stats.TotalUsers++
		if u.Status == domain.StatusActive {
			stats.ActiveUsers++
		}
		if u.Role == domain.RoleAdmin {
			stats.AdminUsers++
		}
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Audit
// ---------------------------------------------------------------------------

type stubAudit struct {
	entries []domain.AuditEntry
	err     error
}

func (a *stubAudit) Record(_ context.Context, e domain.AuditEntry) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, e)
	return nil
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

type stubCategoryRepo struct {
	categories map[int64]*domain.Category
	usage      map[int64]int64
	nextID     int64
	deletes    int
	findErr    error
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories: make(map[int64]*domain.Category),
		usage:      make(map[int64]int64),
	}
}

func (r *stubCategoryRepo) add(name, icon string) *domain.Category {
	r.nextID++
	c := &domain.Category{ID: r.nextID, Name: name, Icon: icon}
	r.categories[c.ID] = c
	return c
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) ListWithUsage(ctx context.Context) ([]domain.CategoryUsage, error) {
	list, _ := r.List(ctx)
	out := make([]domain.CategoryUsage, 0, len(list))
	for _, c := range list {
		out = append(out, domain.CategoryUsage{Category: c, UsageCount: r.usage[c.ID]})
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	created := r.add(c.Name, c.Icon)
	clone := *created
	return &clone, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	existing, ok := r.categories[c.ID]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	existing.Name, existing.Icon = c.Name, c.Icon
	return nil
}

func (r *stubCategoryRepo) CountUsage(_ context.Context, id int64) (int64, error) {
	return r.usage[id], nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

type stubExpenseRepo struct {
	expenses  map[int64]*domain.Expense
	nextID    int64
	lastList  ports.ExpenseFilter
	createErr error
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[int64]*domain.Expense)}
}

func (r *stubExpenseRepo) List(_ context.Context, f ports.ExpenseFilter) ([]domain.ExpenseView, error) {
	r.lastList = f
	var out []domain.ExpenseView
	for _, e := range r.expenses {
		if e.UserID != f.UserID {
			continue
		}
		if f.CategoryID != nil && e.CategoryID != *f.CategoryID {
			continue
		}
		if f.StartDate != nil && e.ExpenseDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.ExpenseDate.After(*f.EndDate) {
			continue
		}
		out = append(out, domain.ExpenseView{Expense: *e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseDate.After(out[j].ExpenseDate) })
	return out, nil
}

func (r *stubExpenseRepo) Create(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *e
	clone.ID = r.nextID
	r.expenses[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *domain.Expense) error {
	existing, ok := r.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return domain.ErrExpenseNotFound
	}
	created := existing.CreatedAt
	*existing = *e
	existing.CreatedAt = created
	return nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id, userID int64) error {
	existing, ok := r.expenses[id]
	if !ok || existing.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	delete(r.expenses, id)
	return nil
}

// ---------------------------------------------------------------------------
// Budgets
// ---------------------------------------------------------------------------

// stubBudgetRepo keeps raw rows, duplicates included, and resolves them the
// way the SQL repository does.
type stubBudgetRepo struct {
	rows       []domain.Budget
	nextID     int64
	categories map[int64]domain.Category
	expenses   []domain.Expense
	resolveErr error
	updates    int
	lastMonth  time.Time
}

func newStubBudgetRepo() *stubBudgetRepo {
	return &stubBudgetRepo{categories: make(map[int64]domain.Category)}
}

func (r *stubBudgetRepo) insert(b domain.Budget) int64 {
	r.nextID++
	b.ID = r.nextID
	r.rows = append(r.rows, b)
	return b.ID
}

func (r *stubBudgetRepo) ResolveForMonth(_ context.Context, userID int64, month time.Time) ([]domain.BudgetView, error) {
	r.lastMonth = month
	if r.resolveErr != nil {
		return nil, r.resolveErr
	}
	active := make(map[int64]domain.Budget)
	for _, b := range r.rows {
		if b.UserID != userID || !b.Month.Equal(month) {
			continue
		}
		if cur, ok := active[b.CategoryID]; !ok || b.ID > cur.ID {
			active[b.CategoryID] = b
		}
	}

	start, end := domain.MonthRange(month)
	var out []domain.BudgetView
	for catID, b := range active {
		spent := decimal.Zero
		for _, e := range r.expenses {
			if e.UserID == userID && e.CategoryID == catID && !e.ExpenseDate.Before(start) && e.ExpenseDate.Before(end) {
				spent = spent.Add(e.Amount)
			}
		}
		cat := r.categories[catID]
		out = append(out, domain.BudgetView{Budget: b, Spent: spent, CategoryName: cat.Name, CategoryIcon: cat.Icon})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}

func (r *stubBudgetRepo) FindIDByKey(_ context.Context, userID, categoryID int64, month time.Time) (int64, bool, error) {
	var id int64
	for _, b := range r.rows {
		if b.UserID == userID && b.CategoryID == categoryID && b.Month.Equal(month) && b.ID > id {
			id = b.ID
		}
	}
	return id, id != 0, nil
}

func (r *stubBudgetRepo) UpdateLimit(_ context.Context, id int64, limit decimal.Decimal) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Limit = limit
			r.updates++
			return nil
		}
	}
	return domain.ErrBudgetNotFound
}

func (r *stubBudgetRepo) Create(_ context.Context, b *domain.Budget) (*domain.Budget, error) {
	clone := *b
	clone.ID = r.insert(clone)
	return &clone, nil
}

func (r *stubBudgetRepo) Delete(_ context.Context, id, userID int64) error {
	for i, b := range r.rows {
		if b.ID == id && b.UserID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrBudgetNotFound
}

// ---------------------------------------------------------------------------
// Idempotency
// ---------------------------------------------------------------------------

type stubIdempotency struct {
	claimed  map[string]bool
	released []string
	err      error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{claimed: make(map[string]bool)}
}

func (s *stubIdempotency) Claim(_ context.Context, _ int64, key string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.claimed[key] {
		return false, nil
	}
	s.claimed[key] = true
	return true, nil
}

func (s *stubIdempotency) Release(_ context.Context, _ int64, key string) error {
	delete(s.claimed, key)
	s.released = append(s.released, key)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
