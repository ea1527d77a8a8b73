package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

func seedUser(repo *stubUserRepo, email string) *domain.User {
	u, _ := repo.Create(context.Background(), &domain.User{
		FirstName:    "Lia",
		Email:        email,
		PasswordHash: "x",
		Status:       domain.StatusActive,
		Role:         domain.RoleStandard,
	})
	return u
}

// ---------------------------------------------------------------------------
// Cascade delete
// ---------------------------------------------------------------------------

func TestAccountService_AdminDeleteUser_RemovesOwnedRows(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewAccountService(repo, audit, discardLogger)

	u := seedUser(repo, "a@example.com")
	repo.expenses[u.ID] = 3
	repo.budgets[u.ID] = 2

	if err := svc.AdminDeleteUser(context.Background(), 99, u.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.users[u.ID]; ok {
		t.Error("user row still present")
	}
	if repo.expenses[u.ID] != 0 || repo.budgets[u.ID] != 0 {
		t.Error("owned rows still present")
	}
	if len(audit.entries) != 1 || audit.entries[0].ActorID != 99 || audit.entries[0].Action != domain.AuditUserDeleted {
		t.Errorf("unexpected audit entries: %+v", audit.entries)
	}
}

func TestAccountService_AdminDeleteUser_Nonexistent(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewAccountService(repo, audit, discardLogger)

	err := svc.AdminDeleteUser(context.Background(), 1, 42)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Error("no audit entry expected for a failed delete")
	}
}

func TestAccountService_AdminDeleteUser_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(repo, "a@example.com")
	repo.deleteErr = errStore
	svc := NewAccountService(repo, nil, discardLogger)

	err := svc.AdminDeleteUser(context.Background(), 1, u.ID)
	if !errors.Is(err, errStore) {
		t.Fatalf("expected store error, got %v", err)
	}
	if domain.IsBusiness(err) {
		t.Error("store failure must not be classified as a business outcome")
	}
}

func TestAccountService_DeleteAccount(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewAccountService(repo, audit, discardLogger)
	u := seedUser(repo, "self@example.com")

	if err := svc.DeleteAccount(context.Background(), u.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.users) != 0 {
		t.Error("user row still present")
	}
	if audit.entries[0].Action != domain.AuditAccountDeleted || audit.entries[0].ActorID != 0 {
		t.Errorf("unexpected audit entry: %+v", audit.entries[0])
	}
}

// ---------------------------------------------------------------------------
// Status
// ---------------------------------------------------------------------------

func TestAccountService_ToggleUserStatus(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	u := seedUser(repo, "t@example.com")

	status, err := svc.ToggleUserStatus(context.Background(), 1, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.StatusInactive {
		t.Fatalf("expected inactive, got %s", status)
	}
	status, _ = svc.ToggleUserStatus(context.Background(), 1, u.ID)
	if status != domain.StatusActive {
		t.Fatalf("expected active after second toggle, got %s", status)
	}
}

func TestAccountService_SetUserStatus(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	u := seedUser(repo, "s@example.com")

	if err := svc.SetUserStatus(context.Background(), 1, u.ID, "Inactive"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.users[u.ID].Status != domain.StatusInactive {
		t.Fatalf("status not applied: %s", repo.users[u.ID].Status)
	}
	if err := svc.SetUserStatus(context.Background(), 1, u.ID, "banned"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.SetUserStatus(context.Background(), 1, 999, "active"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Updates
// ---------------------------------------------------------------------------

func TestAccountService_UpdateAllowance(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	u := seedUser(repo, "m@example.com")

	if err := svc.UpdateAllowance(context.Background(), u.ID, dec("1200.50")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.users[u.ID].MonthlyAllowance.Equal(dec("1200.50")) {
		t.Errorf("allowance not stored: %s", repo.users[u.ID].MonthlyAllowance)
	}
	if err := svc.UpdateAllowance(context.Background(), u.ID, dec("-1")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.UpdateAllowance(context.Background(), u.ID, dec("0.001")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for sub-cent allowance, got %v", err)
	}
	if !repo.users[u.ID].MonthlyAllowance.Equal(dec("1200.50")) {
		t.Errorf("rejected allowance overwrote the stored one: %s", repo.users[u.ID].MonthlyAllowance)
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	u := seedUser(repo, "p@example.com")
	sid := " 2021-0001 "

	updated, err := svc.UpdateProfile(context.Background(), u.ID, ports.ProfileInput{FirstName: "Lea", LastName: "Cruz", StudentID: &sid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Lea" || updated.LastName != "Cruz" {
		t.Errorf("unexpected name: %q %q", updated.FirstName, updated.LastName)
	}
	if updated.StudentID == nil || *updated.StudentID != "2021-0001" {
		t.Errorf("student id not trimmed: %v", updated.StudentID)
	}
}

func TestAccountService_AdminUpdateUser_EmailTaken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	seedUser(repo, "taken@example.com")
	u := seedUser(repo, "mine@example.com")

	err := svc.AdminUpdateUser(context.Background(), 1, ports.AdminUpdateUserInput{
		UserID: u.ID, Email: "taken@example.com", FirstName: "X", Status: "active",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_AdminUpdateUser_KeepsOwnEmailAndResetsPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	u := seedUser(repo, "mine@example.com")

	err := svc.AdminUpdateUser(context.Background(), 1, ports.AdminUpdateUserInput{
		UserID:           u.ID,
		Email:            "mine@example.com",
		FirstName:        "New",
		Status:           "inactive",
		MonthlyAllowance: dec("10"),
		Password:         "changed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := repo.users[u.ID]
	if stored.Status != domain.StatusInactive || stored.FirstName != "New" {
		t.Errorf("update not applied: %+v", stored)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("changed")) != nil {
		t.Error("password not reset")
	}
}

func TestAccountService_AdminUpdateUser_EmptyPasswordKeepsHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	u := seedUser(repo, "keep@example.com")

	err := svc.AdminUpdateUser(context.Background(), 1, ports.AdminUpdateUserInput{
		UserID: u.ID, Email: "keep@example.com", FirstName: "K", Status: "active",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.users[u.ID].PasswordHash != "x" {
		t.Error("password hash must not change when no password is supplied")
	}
}

func TestAccountService_SystemStats(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAccountService(repo, nil, discardLogger)
	seedUser(repo, "1@example.com")
	u := seedUser(repo, "2@example.com")
	repo.users[u.ID].Status = domain.StatusInactive

	stats, err := svc.SystemStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalUsers != 2 || stats.ActiveUsers != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
