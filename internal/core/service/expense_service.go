package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

// IdempotencyChecker abstracts the submission key store (Redis).
type IdempotencyChecker interface {
	// Claim reserves key for the user. It returns false when the key was
	// already claimed.
	Claim(ctx context.Context, userID int64, key string) (bool, error)
	// Release frees a key whose submission failed so it can be retried.
	Release(ctx context.Context, userID int64, key string) error
}

type expenseService struct {
	expenses   ports.ExpenseRepository
	categories ports.CategoryRepository
	users      ports.UserRepository
	idem       IdempotencyChecker
	log        zerolog.Logger
}

// NewExpenseService returns an ExpenseService implementation. idem may be nil,
// in which case idempotency keys are ignored.
func NewExpenseService(
	expenses ports.ExpenseRepository,
	categories ports.CategoryRepository,
	users ports.UserRepository,
	idem IdempotencyChecker,
	log zerolog.Logger,
) ports.ExpenseService {
	return &expenseService{
		expenses:   expenses,
		categories: categories,
		users:      users,
		idem:       idem,
		log:        log,
	}
}

func (s *expenseService) ListExpenses(ctx context.Context, filter ports.ExpenseFilter) ([]domain.ExpenseView, error) {
	if filter.StartDate != nil {
		d := domain.DateOnly(*filter.StartDate)
		filter.StartDate = &d
	}
	if filter.EndDate != nil {
		d := domain.DateOnly(*filter.EndDate)
		filter.EndDate = &d
	}
	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) AddExpense(ctx context.Context, in ports.ExpenseInput) (*ports.ExpenseResult, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, fmt.Errorf("add expense: %w", err)
	}

	claimed := false
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" && s.idem != nil {
		ok, err := s.idem.Claim(ctx, in.UserID, key)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Int64("user_id", in.UserID).Msg("idempotency check failed, processing anyway")
		case !ok:
			s.log.Debug().Int64("user_id", in.UserID).Str("key", key).Msg("duplicate expense submission skipped")
			return &ports.ExpenseResult{Replayed: true}, nil
		default:
			claimed = true
		}
	}

	expense := &domain.Expense{
		UserID:      in.UserID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		ExpenseDate: domain.DateOnly(in.ExpenseDate),
		Description: trimOptional(in.Description),
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.expenses.Create(ctx, expense)
	if err != nil {
		if claimed {
			if relErr := s.idem.Release(ctx, in.UserID, strings.TrimSpace(in.IdempotencyKey)); relErr != nil {
				s.log.Warn().Err(relErr).Int64("user_id", in.UserID).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("add expense: %w", err)
	}

	s.log.Info().
		Int64("user_id", in.UserID).
		Int64("expense_id", created.ID).
		Int64("category_id", in.CategoryID).
		Msg("expense recorded")
	return &ports.ExpenseResult{Expense: created}, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, in ports.ExpenseInput) error {
	if err := s.validate(ctx, in); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	expense := &domain.Expense{
		ID:          in.ID,
		UserID:      in.UserID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		ExpenseDate: domain.DateOnly(in.ExpenseDate),
		Description: trimOptional(in.Description),
	}
	if err := s.expenses.Update(ctx, expense); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id, userID int64) error {
	if err := s.expenses.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.log.Info().Int64("user_id", userID).Int64("expense_id", id).Msg("expense deleted")
	return nil
}

func (s *expenseService) validate(ctx context.Context, in ports.ExpenseInput) error {
	if !domain.ValidAmount(in.Amount) || in.ExpenseDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if err := requireUser(ctx, s.users, in.UserID); err != nil {
		return err
	}
	return requireCategory(ctx, s.categories, in.CategoryID)
}

// requireUser rejects writes carrying a token whose user has been deleted.
// Tokens are stateless, so the row is the only source of truth.
func requireUser(ctx context.Context, users ports.UserRepository, id int64) error {
	if _, err := users.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func requireCategory(ctx context.Context, categories ports.CategoryRepository, id int64) error {
	if _, err := categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	return nil
}
