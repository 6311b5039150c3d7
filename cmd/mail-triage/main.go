package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/di"
	"github.com/mikey/mail-triage/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	triageRunner ports.Runner,
	auditRepo core.AuditRepository,
) error {
	defer logger.Sync()

	// Start the batch runner
	if err := triageRunner.Start(); err != nil {
		logger.Error("Failed to start runner", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Shutting down...")
		if err := triageRunner.Stop(); err != nil {
			logger.Error("Failed to stop runner", zap.Error(err))
		}
	case <-triageRunner.Done():
		// run_once mode: the loop exits after a single batch
		logger.Info("Run complete")
	}

	// Stop the audit journal if needed
	if stopper, ok := auditRepo.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
