package audit

import (
	"context"

	"github.com/mikey/mail-triage/internal/core"
)

// NopAudit discards every entry. Used when the journal is disabled.
type NopAudit struct{}

// NewNopAudit creates a journal that records nothing.
func NewNopAudit() *NopAudit {
	return &NopAudit{}
}

// Record drops the entry.
func (a *NopAudit) Record(ctx context.Context, entry *core.AuditEntry) error {
	return nil
}

// Cleanup is a no-op.
func (a *NopAudit) Cleanup(ctx context.Context) error {
	return nil
}
