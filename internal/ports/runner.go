package ports

// Runner is the outer surface that drives triage batches.
type Runner interface {
	// Start launches the batch loop.
	Start() error

	// Stop ends the loop, waiting for an in-flight batch to finish.
	Stop() error

	// Done is closed when the loop has exited on its own, e.g. in
	// run-once mode.
	Done() <-chan struct{}
}
