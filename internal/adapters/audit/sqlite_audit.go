package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/mail-triage/internal/core"
	"go.uber.org/zap"
)

// SQLiteAudit is a SQLite implementation of the AuditRepository
// interface.
type SQLiteAudit struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteAudit creates a new SQLite-backed journal.
func NewSQLiteAudit(dbPath string, logger *zap.Logger, retention, cleanupFreq time.Duration) (*SQLiteAudit, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS triage_audit (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			view TEXT,
			thread_id TEXT,
			important BOOLEAN,
			suspicious BOOLEAN,
			spam BOOLEAN,
			action TEXT,
			error TEXT,
			processed_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Index on processed_at for faster retention cleanup
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_processed_at ON triage_audit(processed_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	a := &SQLiteAudit{
		db:          db,
		logger:      logger,
		retention:   retention,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go a.startCleanupTask()

	return a, nil
}

// Record appends one journal entry.
func (a *SQLiteAudit) Record(ctx context.Context, entry *core.AuditEntry) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO triage_audit (run_id, view, thread_id, important, suspicious, spam, action, error, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.RunID, entry.View, entry.ThreadID,
		entry.Important, entry.Suspicious, entry.Spam,
		string(entry.Action), entry.Error, entry.ProcessedAt.Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// Cleanup removes entries older than the retention window.
func (a *SQLiteAudit) Cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-a.retention).Format(time.RFC3339)
	result, err := a.db.ExecContext(ctx, `
		DELETE FROM triage_audit
		WHERE processed_at <= ?
	`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		a.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		a.logger.Debug("Cleaned up expired audit entries", zap.Int64("expired_count", rowsAffected))
	}
	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (a *SQLiteAudit) startCleanupTask() {
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

// Stop stops the background cleanup task and closes the database.
func (a *SQLiteAudit) Stop() {
	close(a.stopCh)
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
