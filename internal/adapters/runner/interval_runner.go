// Package runner hosts the batch loop: the trigger-scheduling shell
// around the triage service.
package runner

import (
	"context"
	"time"

	"github.com/mikey/mail-triage/internal/core"
	"go.uber.org/zap"
)

// IntervalRunner executes triage batches on a fixed cadence. With
// runOnce set it performs a single batch and exits the loop, matching
// cron-style hosting.
type IntervalRunner struct {
	service  *core.TriageService
	logger   *zap.Logger
	interval time.Duration
	runOnce  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewIntervalRunner creates a new interval runner.
func NewIntervalRunner(service *core.TriageService, logger *zap.Logger, interval time.Duration, runOnce bool) *IntervalRunner {
	return &IntervalRunner{
		service:  service,
		logger:   logger,
		interval: interval,
		runOnce:  runOnce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the batch loop in the background. The first batch
// runs immediately.
func (r *IntervalRunner) Start() error {
	r.logger.Info("Triage runner starting",
		zap.Duration("interval", r.interval),
		zap.Bool("run_once", r.runOnce))
	go r.loop()
	return nil
}

func (r *IntervalRunner) loop() {
	defer close(r.doneCh)

	r.runBatch()
	if r.runOnce {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.runBatch()
		case <-r.stopCh:
			return
		}
	}
}

func (r *IntervalRunner) runBatch() {
	summary, err := r.service.Run(context.Background())
	if err != nil {
		r.logger.Error("Triage run failed", zap.Error(err))
		return
	}
	r.logger.Info("Triage run complete",
		zap.String("run_id", summary.RunID),
		zap.Int("threads", summary.Threads),
		zap.Int("trashed", summary.Trashed),
		zap.Int("suspicious", summary.Suspicious),
		zap.Int("important", summary.Important),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", time.Since(summary.StartedAt)))
}

// Stop ends the loop and waits for an in-flight batch to finish.
func (r *IntervalRunner) Stop() error {
	close(r.stopCh)
	<-r.doneCh
	return nil
}

// Done is closed when the loop has exited on its own.
func (r *IntervalRunner) Done() <-chan struct{} {
	return r.doneCh
}
