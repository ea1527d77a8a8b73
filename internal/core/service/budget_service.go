package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type budgetService struct {
	repo       ports.BudgetRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
	now        func() time.Time
	log        zerolog.Logger
}

// NewBudgetService returns a BudgetService implementation.
func NewBudgetService(
	repo ports.BudgetRepository,
	categories ports.CategoryRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) ports.BudgetService {
	return &budgetService{repo: repo, categories: categories, users: users, now: time.Now, log: log}
}

// ResolveBudgets returns one view per category that has a budget stored for
// exactly the requested month. Budgets from other months are never carried
// over.
func (s *budgetService) ResolveBudgets(ctx context.Context, userID int64, month *time.Time) ([]domain.BudgetView, error) {
	target := s.now()
	if month != nil {
		target = *month
	}
	views, err := s.repo.ResolveForMonth(ctx, userID, domain.MonthStart(target))
	if err != nil {
		return nil, fmt.Errorf("resolve budgets: %w", err)
	}
	return views, nil
}

// SetBudget updates the active budget for (user, category, month) in place or
// inserts one when none exists. The lookup and the insert are not atomic;
// concurrent callers can both insert, which the highest-id rule absorbs.
func (s *budgetService) SetBudget(ctx context.Context, in ports.SetBudgetInput) error {
	if !domain.ValidAmount(in.Limit) || in.Month.IsZero() {
		return domain.ErrInvalidInput
	}
	if err := requireUser(ctx, s.users, in.UserID); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	if err := requireCategory(ctx, s.categories, in.CategoryID); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	month := domain.MonthStart(in.Month)

	id, found, err := s.repo.FindIDByKey(ctx, in.UserID, in.CategoryID, month)
	if err != nil {
		return fmt.Errorf("set budget: %w", err)
	}

	if found {
		if err := s.repo.UpdateLimit(ctx, id, in.Limit); err != nil {
			return fmt.Errorf("set budget: %w", err)
		}
		s.log.Info().Int64("user_id", in.UserID).Int64("budget_id", id).Msg("budget updated")
		return nil
	}

	created, err := s.repo.Create(ctx, &domain.Budget{
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
		Limit:      in.Limit,
		Month:      month,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	s.log.Info().Int64("user_id", in.UserID).Int64("budget_id", created.ID).Msg("budget created")
	return nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, budgetID, userID int64) error {
	if err := s.repo.Delete(ctx, budgetID, userID); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
