package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	audit     ports.AuditRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, audit ports.AuditRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, audit: audit, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a standard, active account.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.register(ctx, in, domain.RoleStandard)
}

// RegisterAdmin creates an administrator. Only reachable from the bootstrap CLI.
func (s *AuthService) RegisterAdmin(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.register(ctx, in, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, in ports.RegisterInput, role string) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	if email == "" || in.Password == "" || firstName == "" || !domain.ValidAmount(in.MonthlyAllowance) {
		return nil, domain.ErrInvalidInput
	}

	taken, err := s.users.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		FirstName:        firstName,
		LastName:         strings.TrimSpace(in.LastName),
		Email:            email,
		PasswordHash:     string(hash),
		StudentID:        trimOptional(in.StudentID),
		MonthlyAllowance: in.MonthlyAllowance,
		Status:           domain.StatusActive,
		Role:             role,
		CreatedAt:        time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	recordAudit(ctx, s.audit, s.log, domain.AuditEntry{
		Action: domain.AuditUserRegistered,
		UserID: created.ID,
		Detail: role,
	})
	s.log.Info().Int64("user_id", created.ID).Str("role", role).Msg("user registered")
	return created, nil
}

// Login checks the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Status != domain.StatusActive {
		return "", nil, domain.ErrAccountInactive
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"role":  user.Role,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// recordAudit appends to the audit trail. Failures never abort the caller.
func recordAudit(ctx context.Context, audit ports.AuditRepository, log zerolog.Logger, entry domain.AuditEntry) {
	if audit == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := audit.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", string(entry.Action)).Int64("user_id", entry.UserID).Msg("failed to record audit entry")
	}
}
