package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/mail-triage/internal/core"
	"go.uber.org/zap"
)

// MySQLAudit is a MySQL implementation of the AuditRepository
// interface.
type MySQLAudit struct {
	db          *sql.DB
	logger      *zap.Logger
	retention   time.Duration
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewMySQLAudit creates a new MySQL-backed journal.
func NewMySQLAudit(dsn string, logger *zap.Logger, retention, cleanupFreq time.Duration) (*MySQLAudit, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS triage_audit (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(64),
			view VARCHAR(32),
			thread_id VARCHAR(64),
			important BOOLEAN,
			suspicious BOOLEAN,
			spam BOOLEAN,
			action VARCHAR(32),
			error TEXT,
			processed_at TIMESTAMP,
			INDEX idx_processed_at (processed_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	a := &MySQLAudit{
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
func (a *MySQLAudit) Record(ctx context.Context, entry *core.AuditEntry) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO triage_audit (run_id, view, thread_id, important, suspicious, spam, action, error, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.RunID, entry.View, entry.ThreadID,
		entry.Important, entry.Suspicious, entry.Spam,
		string(entry.Action), entry.Error, entry.ProcessedAt)

	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// Cleanup removes entries older than the retention window.
func (a *MySQLAudit) Cleanup(ctx context.Context) error {
	result, err := a.db.ExecContext(ctx, `
		DELETE FROM triage_audit
		WHERE processed_at <= ?
	`, time.Now().Add(-a.retention))
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
func (a *MySQLAudit) startCleanupTask() {
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
func (a *MySQLAudit) Stop() {
	close(a.stopCh)
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
