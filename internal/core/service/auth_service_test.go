package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		FirstName:        "Ana",
		LastName:         "Reyes",
		Email:            email,
		Password:         "pass123",
		MonthlyAllowance: dec("5000"),
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewAuthService(repo, audit, "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), registerInput(" Ana@Example.com "))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email not normalised: %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleStandard {
		t.Errorf("unexpected role: %s", user.Role)
	}
	if user.Status != domain.StatusActive {
		t.Errorf("unexpected status: %s", user.Status)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != domain.AuditUserRegistered {
		t.Errorf("expected one registration audit entry, got %+v", audit.entries)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, "secret", time.Hour, discardLogger)

	cases := map[string]ports.RegisterInput{
		"missing email":      {FirstName: "A", Password: "p"},
		"missing password":   {FirstName: "A", Email: "a@b.c"},
		"missing first name": {Email: "a@b.c", Password: "p"},
		"negative allowance": {FirstName: "A", Email: "a@b.c", Password: "p", MonthlyAllowance: dec("-1")},
	}
	for name, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmailInsertsNothing(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("BOB@example.com"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one insert, got %d", repo.creates)
	}
}

func TestAuthService_Register_AuditFailureIsNotFatal(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubAudit{err: errStore}, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), registerInput("eve@example.com")); err != nil {
		t.Fatalf("audit failure must not fail registration: %v", err)
	}
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, "secret", time.Hour, discardLogger)

	user, err := svc.RegisterAdmin(context.Background(), registerInput("root@example.com"))
	if err != nil {
		t.Fatalf("RegisterAdmin returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, "secret", time.Hour, discardLogger)

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleStandard {
		t.Errorf("expected role %s, got %v", domain.RoleStandard, claims["role"])
	}
	if claims["sub"] != "1" {
		t.Errorf("expected sub 1, got %v", claims["sub"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, "secret", time.Hour, discardLogger)

	_, _ = svc.Register(context.Background(), registerInput("dave@example.com"))
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour, discardLogger)

	user, _ := svc.Register(context.Background(), registerInput("frank@example.com"))
	repo.users[user.ID].Status = domain.StatusInactive

	if _, _, err := svc.Login(context.Background(), "frank@example.com", "pass123"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}
