package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/mail-triage/internal/adapters/audit"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"go.uber.org/zap"
)

// AuditFactory creates run-journal repositories based on configuration
type AuditFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuditFactory creates a new audit factory
func NewAuditFactory(cfg *config.Config, logger *zap.Logger) *AuditFactory {
	return &AuditFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAuditRepository creates a journal repository based on the
// configuration. A disabled journal yields a no-op repository.
func (f *AuditFactory) CreateAuditRepository() (core.AuditRepository, error) {
	if !f.cfg.GetBool("audit.enabled") {
		return audit.NewNopAudit(), nil
	}

	retention, err := f.cfg.GetDuration("audit.retention")
	if err != nil {
		return nil, fmt.Errorf("invalid audit retention: %w", err)
	}
	cleanupFreq, err := f.cfg.GetDuration("audit.cleanup_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid audit cleanup frequency: %w", err)
	}

	auditType := f.cfg.GetString("audit.type")
	switch auditType {
	case "memory":
		return audit.NewMemoryAudit(f.logger, retention, cleanupFreq), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("audit.sqlite_path")
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return audit.NewSQLiteAudit(sqlitePath, f.logger, retention, cleanupFreq)
	case "mysql":
		return audit.NewMySQLAudit(f.cfg.GetString("audit.mysql_dsn"), f.logger, retention, cleanupFreq)
	default:
		return nil, fmt.Errorf("unsupported audit type: %s", auditType)
	}
}
