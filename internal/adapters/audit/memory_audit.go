// Package audit provides run-journal repositories recording one row
// per triaged thread, with retention-based cleanup.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/mikey/mail-triage/internal/core"
	"go.uber.org/zap"
)

// MemoryAudit keeps the run journal in memory. Suited to run-once
// hosting where the journal only needs to outlive the process logs.
type MemoryAudit struct {
	mu          sync.Mutex
	entries     []*core.AuditEntry
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMemoryAudit creates a new in-memory journal.
func NewMemoryAudit(logger *zap.Logger, retention, cleanupFreq time.Duration) *MemoryAudit {
	a := &MemoryAudit{
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go a.startCleanupTask()

	return a
}

// Record appends one journal entry.
func (a *MemoryAudit) Record(ctx context.Context, entry *core.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, entry)
	return nil
}

// Entries returns a snapshot of the journal.
func (a *MemoryAudit) Entries() []*core.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*core.AuditEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Cleanup removes entries older than the retention window.
func (a *MemoryAudit) Cleanup(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cutoff := time.Now().Add(-a.retention)
	kept := a.entries[:0]
	expired := 0
	for _, entry := range a.entries {
		if entry.ProcessedAt.Before(cutoff) {
			expired++
			continue
		}
		kept = append(kept, entry)
	}
	a.entries = kept

	a.logger.Debug("Cleaned up expired audit entries", zap.Int("expired_count", expired))
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (a *MemoryAudit) startCleanupTask() {
	ticker := time.NewTicker(a.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.Cleanup(context.Background()); err != nil {
				a.logger.Error("Failed to clean up audit journal", zap.Error(err))
			}
		case <-a.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task.
func (a *MemoryAudit) Stop() {
	close(a.stopCh)
}
