package core

import (
	"context"
)

// Mailbox is the driver boundary to the mail provider. All write
// operations are idempotent at the provider: re-applying a label or
// re-starring a thread is a no-op.
type Mailbox interface {
	// ListThreads returns up to max threads in the given view that do
	// not carry the exclude label. A max of zero means no limit.
	ListThreads(ctx context.Context, view, excludeLabel string, max int64) ([]*Thread, error)

	// EnsureLabel creates the named label if it does not exist.
	EnsureLabel(ctx context.Context, name string) error

	// ApplyLabel attaches a label to a thread.
	ApplyLabel(ctx context.Context, threadID, name string) error

	// Star stars a thread.
	Star(ctx context.Context, threadID string) error

	// MarkImportant marks a thread important.
	MarkImportant(ctx context.Context, threadID string) error

	// Trash moves a thread to the trash.
	Trash(ctx context.Context, threadID string) error
}

// AuditRepository persists per-thread triage outcomes.
type AuditRepository interface {
	// Record appends one journal entry.
	Record(ctx context.Context, entry *AuditEntry) error

	// Cleanup removes entries older than the repository's retention.
	Cleanup(ctx context.Context) error
}
