package factory

import (
	"context"
	"fmt"

	"github.com/mikey/mail-triage/internal/adapters/gmailbox"
	"github.com/mikey/mail-triage/internal/adapters/memory"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"go.uber.org/zap"
)

// MailboxFactory creates mailbox drivers based on configuration
type MailboxFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailboxFactory creates a new mailbox factory
func NewMailboxFactory(cfg *config.Config, logger *zap.Logger) *MailboxFactory {
	return &MailboxFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailbox creates a mailbox driver based on the configuration
func (f *MailboxFactory) CreateMailbox(ctx context.Context) (core.Mailbox, error) {
	provider := f.cfg.GetString("mailbox.provider")

	switch provider {
	case "gmail":
		gmailCfg := f.cfg.GetGmail()
		return gmailbox.NewMailbox(ctx, gmailbox.Config{
			CredentialsFile: gmailCfg.CredentialsFile,
			TokenFile:       gmailCfg.TokenFile,
			User:            gmailCfg.User,
			MaxBodySize:     gmailCfg.MaxBodySize,
		}, f.logger)
	case "memory":
		return memory.NewMailbox(), nil
	default:
		return nil, fmt.Errorf("unsupported mailbox provider: %s", provider)
	}
}
