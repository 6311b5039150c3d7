package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Labels names the labels the service manages. Processed is the
// idempotency marker: threads carrying it are excluded from future
// scans at the query boundary.
type Labels struct {
	Important  string
	Suspicious string
	Processed  string
}

// TriageSettings are the run-scoped knobs for the service, loaded
// once at startup and immutable during a run.
type TriageSettings struct {
	Labels     Labels
	Views      []string
	BatchSize  int64
	DryRun     bool
	HardDelete bool
}

// TriageService runs the triage batch: list unprocessed threads per
// view, fold a thread verdict out of the per-message verdicts,
// execute the selected action and stamp the processed marker.
// Failures are isolated per thread; nothing aborts the batch.
type TriageService struct {
	mailbox    Mailbox
	classifier *Classifier
	audit      AuditRepository
	logger     *zap.Logger
	settings   TriageSettings
}

// NewTriageService creates a new triage service.
func NewTriageService(
	mailbox Mailbox,
	classifier *Classifier,
	audit AuditRepository,
	logger *zap.Logger,
	settings TriageSettings,
) *TriageService {
	return &TriageService{
		mailbox:    mailbox,
		classifier: classifier,
		audit:      audit,
		logger:     logger,
		settings:   settings,
	}
}

// Run executes one bounded batch over all configured views. Threads
// are handled strictly sequentially; a failed thread is logged,
// journaled and skipped, and retries naturally on the next run since
// it was never marked processed.
func (s *TriageService) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	labels := s.settings.Labels
	for _, name := range []string{labels.Important, labels.Suspicious, labels.Processed} {
		if err := s.mailbox.EnsureLabel(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to ensure label %q: %w", name, err)
		}
	}

	for _, view := range s.settings.Views {
		threads, err := s.mailbox.ListThreads(ctx, view, labels.Processed, s.settings.BatchSize)
		if err != nil {
			s.logger.Error("Failed to list threads",
				zap.String("view", view),
				zap.Error(err))
			continue
		}

		for _, thread := range threads {
			result := s.processThread(ctx, view, thread)
			s.record(ctx, summary.RunID, result)
			summary.Threads++

			if result.Err != nil {
				summary.Failed++
				s.logger.Error("Failed to process thread",
					zap.String("view", view),
					zap.String("thread_id", thread.ID),
					zap.Error(result.Err))
				continue
			}

			switch result.Action {
			case ActionTrash:
				summary.Trashed++
			case ActionFlagSuspicious:
				summary.Suspicious++
			case ActionFlagImportant:
				summary.Important++
			}

			s.logger.Debug("Processed thread",
				zap.String("view", view),
				zap.String("thread_id", thread.ID),
				zap.String("action", string(result.Action)),
				zap.Bool("important", result.Verdict.Important),
				zap.Bool("suspicious", result.Verdict.Suspicious),
				zap.Bool("spam", result.Verdict.Spam))
		}
	}

	return summary, nil
}

// processThread classifies one thread and executes its action. The
// processed marker is applied last, and only when everything before
// it succeeded, so a failed thread is retried on the next run.
func (s *TriageService) processThread(ctx context.Context, view string, thread *Thread) ThreadResult {
	verdict := s.classifier.AggregateThread(thread.Messages)
	result := ThreadResult{
		ThreadID: thread.ID,
		View:     view,
		Verdict:  verdict,
		Action:   s.selectAction(verdict),
	}

	if err := s.execute(ctx, thread.ID, result.Action); err != nil {
		result.Err = err
		return result
	}
	if err := s.mailbox.ApplyLabel(ctx, thread.ID, s.settings.Labels.Processed); err != nil {
		result.Err = fmt.Errorf("failed to apply processed marker: %w", err)
	}
	return result
}

// selectAction resolves a thread verdict into one action, first match
// wins. Trashing requires both the hard-delete policy and dry-run off;
// otherwise a spam-only thread falls through to no action.
func (s *TriageService) selectAction(v Verdict) Action {
	switch {
	case v.Spam && s.settings.HardDelete && !s.settings.DryRun:
		return ActionTrash
	case v.Suspicious:
		return ActionFlagSuspicious
	case v.Important:
		return ActionFlagImportant
	default:
		return ActionNone
	}
}

func (s *TriageService) execute(ctx context.Context, threadID string, action Action) error {
	labels := s.settings.Labels
	switch action {
	case ActionTrash:
		if err := s.mailbox.Trash(ctx, threadID); err != nil {
			return fmt.Errorf("failed to trash thread: %w", err)
		}
	case ActionFlagSuspicious:
		if err := s.mailbox.ApplyLabel(ctx, threadID, labels.Suspicious); err != nil {
			return fmt.Errorf("failed to apply suspicious label: %w", err)
		}
		if err := s.mailbox.Star(ctx, threadID); err != nil {
			return fmt.Errorf("failed to star thread: %w", err)
		}
	case ActionFlagImportant:
		if err := s.mailbox.ApplyLabel(ctx, threadID, labels.Important); err != nil {
			return fmt.Errorf("failed to apply important label: %w", err)
		}
		if err := s.mailbox.MarkImportant(ctx, threadID); err != nil {
			return fmt.Errorf("failed to mark thread important: %w", err)
		}
		if err := s.mailbox.Star(ctx, threadID); err != nil {
			return fmt.Errorf("failed to star thread: %w", err)
		}
	}
	return nil
}

// record writes the journal entry for one thread. Journal failures
// are logged and never affect the batch.
func (s *TriageService) record(ctx context.Context, runID string, result ThreadResult) {
	entry := &AuditEntry{
		RunID:       runID,
		View:        result.View,
		ThreadID:    result.ThreadID,
		Important:   result.Verdict.Important,
		Suspicious:  result.Verdict.Suspicious,
		Spam:        result.Verdict.Spam,
		Action:      result.Action,
		ProcessedAt: time.Now(),
	}
	if result.Err != nil {
		entry.Error = result.Err.Error()
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("Failed to record audit entry",
			zap.String("thread_id", result.ThreadID),
			zap.Error(err))
	}
}
