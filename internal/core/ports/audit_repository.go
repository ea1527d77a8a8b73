package ports

import (
	"context"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// AuditRepository persists account lifecycle entries to the audit trail.
type AuditRepository interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
