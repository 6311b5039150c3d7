package factory

import (
	"fmt"

	"github.com/mikey/mail-triage/internal/adapters/runner"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/ports"
	"go.uber.org/zap"
)

// RunnerFactory creates the batch runner based on configuration
type RunnerFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.TriageService
}

// NewRunnerFactory creates a new runner factory
func NewRunnerFactory(cfg *config.Config, logger *zap.Logger, service *core.TriageService) *RunnerFactory {
	return &RunnerFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateRunner creates the batch runner based on the configuration
func (f *RunnerFactory) CreateRunner() (ports.Runner, error) {
	interval, err := f.cfg.GetDuration("triage.interval")
	if err != nil {
		return nil, fmt.Errorf("invalid triage interval: %w", err)
	}
	return runner.NewIntervalRunner(
		f.service,
		f.logger,
		interval,
		f.cfg.GetBool("triage.run_once"),
	), nil
}
