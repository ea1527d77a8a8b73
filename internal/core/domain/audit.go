package domain

import "time"

// AuditAction names an account lifecycle change.
type AuditAction string

const (
	AuditUserRegistered    AuditAction = "user_registered"
	AuditUserUpdated       AuditAction = "user_updated"
	AuditUserStatusChanged AuditAction = "user_status_changed"
	AuditUserDeleted       AuditAction = "user_deleted"
	AuditAccountDeleted    AuditAction = "account_deleted"
)

// AuditEntry records who changed which account and how.
type AuditEntry struct {
	Action    AuditAction
	UserID    int64
	ActorID   int64 // zero when the user acted on their own account
	Detail    string
	Timestamp time.Time
}
