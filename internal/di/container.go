package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/factory"
	"github.com/mikey/mail-triage/internal/logging"
	"github.com/mikey/mail-triage/internal/ports"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewMailboxFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewAuditFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewRunnerFactory); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *core.Classifier {
		rules := cfg.GetRules()
		if len(rules.KnownSenders) > 0 {
			logger.Info("Loaded known senders", zap.Strings("entries", rules.KnownSenders))
		}
		return core.NewClassifier(core.Rules{
			KnownSenders:      rules.KnownSenders,
			ImportantKeywords: rules.ImportantKeywords,
			SpamTLDs:          rules.SpamTLDs,
			ShortenerDomains:  rules.ShortenerDomains,
			PhishingPhrases:   rules.PhishingPhrases,
		})
	}); err != nil {
		return nil, err
	}

	// Register mailbox driver
	if err := container.Provide(func(f *factory.MailboxFactory) (core.Mailbox, error) {
		return f.CreateMailbox(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register audit repository
	if err := container.Provide(func(f *factory.AuditFactory) (core.AuditRepository, error) {
		return f.CreateAuditRepository()
	}); err != nil {
		return nil, err
	}

	// Register triage settings
	if err := container.Provide(func(cfg *config.Config) core.TriageSettings {
		triage := cfg.GetTriage()
		labels := cfg.GetLabels()
		return core.TriageSettings{
			Labels: core.Labels{
				Important:  labels.Important,
				Suspicious: labels.Suspicious,
				Processed:  labels.Processed,
			},
			Views:      triage.Views,
			BatchSize:  triage.BatchSize,
			DryRun:     triage.DryRun,
			HardDelete: triage.HardDelete,
		}
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(core.NewTriageService); err != nil {
		return nil, err
	}

	// Register batch runner
	if err := container.Provide(func(f *factory.RunnerFactory) (ports.Runner, error) {
		return f.CreateRunner()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
