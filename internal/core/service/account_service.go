package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type accountService struct {
	users ports.UserRepository
	audit ports.AuditRepository
	log   zerolog.Logger
}

// NewAccountService returns an AccountService implementation. audit may be nil.
func NewAccountService(users ports.UserRepository, audit ports.AuditRepository, log zerolog.Logger) ports.AccountService {
	return &accountService{users: users, audit: audit, log: log}
}

func (s *accountService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *accountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *accountService) UpdateAllowance(ctx context.Context, id int64, allowance decimal.Decimal) error {
	if !domain.ValidAmount(allowance) {
		return domain.ErrInvalidInput
	}
	if err := s.users.UpdateAllowance(ctx, id, allowance); err != nil {
		return fmt.Errorf("update allowance: %w", err)
	}
	s.log.Info().Int64("user_id", id).Str("allowance", allowance.StringFixed(2)).Msg("allowance updated")
	return nil
}

func (s *accountService) UpdateProfile(ctx context.Context, id int64, in ports.ProfileInput) (*domain.User, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.users.UpdateProfile(ctx, id, firstName, strings.TrimSpace(in.LastName), trimOptional(in.StudentID)); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	recordAudit(ctx, s.audit, s.log, domain.AuditEntry{Action: domain.AuditUserUpdated, UserID: id, Detail: "profile"})
	return s.GetUser(ctx, id)
}

func (s *accountService) AdminUpdateUser(ctx context.Context, actorID int64, in ports.AdminUpdateUserInput) error {
	email := normalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	status := domain.UserStatus(in.Status)
	if email == "" || firstName == "" || !status.Valid() || !domain.ValidAmount(in.MonthlyAllowance) {
		return domain.ErrInvalidInput
	}

	taken, err := s.users.EmailExists(ctx, email, in.UserID)
	if err != nil {
		return fmt.Errorf("admin update user: %w", err)
	}
	if taken {
		return domain.ErrEmailTaken
	}

	update := ports.AdminUserUpdate{
		ID:               in.UserID,
		Email:            email,
		FirstName:        firstName,
		LastName:         strings.TrimSpace(in.LastName),
		StudentID:        trimOptional(in.StudentID),
		MonthlyAllowance: in.MonthlyAllowance,
		Status:           status,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("admin update user: hash password: %w", err)
		}
		update.PasswordHash = string(hash)
	}

	if err := s.users.AdminUpdate(ctx, update); err != nil {
		return fmt.Errorf("admin update user: %w", err)
	}

	detail := "admin update"
	if update.PasswordHash != "" {
		detail = "admin update with password reset"
	}
	recordAudit(ctx, s.audit, s.log, domain.AuditEntry{
		Action:  domain.AuditUserUpdated,
		UserID:  in.UserID,
		ActorID: actorID,
		Detail:  detail,
	})
	s.log.Info().Int64("user_id", in.UserID).Int64("actor_id", actorID).Msg("user updated by admin")
	return nil
}

func (s *accountService) ToggleUserStatus(ctx context.Context, actorID, id int64) (domain.UserStatus, error) {
	status, err := s.users.ToggleStatus(ctx, id)
	if err != nil {
		return "", fmt.Errorf("toggle user status: %w", err)
	}

	recordAudit(ctx, s.audit, s.log, domain.AuditEntry{
		Action:  domain.AuditUserStatusChanged,
		UserID:  id,
		ActorID: actorID,
		Detail:  string(status),
	})
	s.log.Info().Int64("user_id", id).Str("status", string(status)).Msg("user status toggled")
	return status, nil
}

func (s *accountService) SetUserStatus(ctx context.Context, actorID, id int64, status string) error {
	st := domain.UserStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return domain.ErrInvalidInput
	}
	if err := s.users.SetStatus(ctx, id, st); err != nil {
		return fmt.Errorf("set user status: %w", err)
	}

	recordAudit(ctx, s.audit, s.log, domain.AuditEntry{
		Action:  domain.AuditUserStatusChanged,
		UserID:  id,
		ActorID: actorID,
		Detail:  string(st),
	})
	s.log.Info().Int64("user_id", id).Str("status", string(st)).Msg("user status set")
	return nil
}

// AdminDeleteUser removes a user together with every expense and budget they
// own. Either all of it goes or none of it does.
func (s *accountService) AdminDeleteUser(ctx context.Context, actorID, id int64) error {
	if err := s.users.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("admin delete user: %w", err)
	}

	recordAudit(ctx, s.audit, s.log, domain.AuditEntry{Action: domain.AuditUserDeleted, UserID: id, ActorID: actorID})
	s.log.Info().Int64("user_id", id).Int64("actor_id", actorID).Msg("user deleted")
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.users.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	recordAudit(ctx, s.audit, s.log, domain.AuditEntry{Action: domain.AuditAccountDeleted, UserID: id})
	s.log.Info().Int64("user_id", id).Msg("account deleted")
	return nil
}

func (s *accountService) UserStatistics(ctx context.Context, id int64) (*domain.UserStatistics, error) {
	stats, err := s.users.Statistics(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user statistics: %w", err)
	}
	return stats, nil
}

func (s *accountService) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	stats, err := s.users.SystemStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}
	return stats, nil
}
