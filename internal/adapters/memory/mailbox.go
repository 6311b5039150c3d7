// Package memory provides an in-memory mailbox driver used by tests
// and the "memory" provider. It records every mutation in order so
// callers can assert the exact driver call sequence.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/mikey/mail-triage/internal/core"
)

// ErrUnknownThread is returned for operations on thread IDs the
// mailbox has never seen.
var ErrUnknownThread = errors.New("unknown thread")

// Op is one recorded mutation.
type Op struct {
	Kind     string
	ThreadID string
	Label    string
}

const (
	OpEnsureLabel   = "ensure_label"
	OpApplyLabel    = "apply_label"
	OpStar          = "star"
	OpMarkImportant = "mark_important"
	OpTrash         = "trash"
)

// Mailbox is an in-memory implementation of core.Mailbox.
type Mailbox struct {
	mu        sync.Mutex
	views     map[string][]*core.Thread
	threads   map[string]*core.Thread
	labels    map[string]bool
	applied   map[string]map[string]bool
	starred   map[string]bool
	important map[string]bool
	trashed   map[string]bool
	ops       []Op
}

// NewMailbox creates an empty in-memory mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		views:     make(map[string][]*core.Thread),
		threads:   make(map[string]*core.Thread),
		labels:    make(map[string]bool),
		applied:   make(map[string]map[string]bool),
		starred:   make(map[string]bool),
		important: make(map[string]bool),
		trashed:   make(map[string]bool),
	}
}

// AddThread places a thread into a view.
func (m *Mailbox) AddThread(view string, thread *core.Thread) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.views[view] = append(m.views[view], thread)
	m.threads[thread.ID] = thread
}

// ListThreads returns up to max non-trashed threads in the view that
// do not carry the exclude label.
func (m *Mailbox) ListThreads(ctx context.Context, view, excludeLabel string, max int64) ([]*core.Thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*core.Thread
	for _, thread := range m.views[view] {
		if m.trashed[thread.ID] {
			continue
		}
		if excludeLabel != "" && m.applied[thread.ID][excludeLabel] {
			continue
		}
		out = append(out, thread)
		if max > 0 && int64(len(out)) >= max {
			break
		}
	}
	return out, nil
}

// EnsureLabel creates the label if absent.
func (m *Mailbox) EnsureLabel(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.labels[name] = true
	m.ops = append(m.ops, Op{Kind: OpEnsureLabel, Label: name})
	return nil
}

// ApplyLabel attaches a label to a known thread.
func (m *Mailbox) ApplyLabel(ctx context.Context, threadID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.threads[threadID]; !ok {
		return ErrUnknownThread
	}
	m.labels[name] = true
	if m.applied[threadID] == nil {
		m.applied[threadID] = make(map[string]bool)
	}
	m.applied[threadID][name] = true
	m.ops = append(m.ops, Op{Kind: OpApplyLabel, ThreadID: threadID, Label: name})
	return nil
}

// Star stars a thread.
func (m *Mailbox) Star(ctx context.Context, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.threads[threadID]; !ok {
		return ErrUnknownThread
	}
	m.starred[threadID] = true
	m.ops = append(m.ops, Op{Kind: OpStar, ThreadID: threadID})
	return nil
}

// MarkImportant marks a thread important.
func (m *Mailbox) MarkImportant(ctx context.Context, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.threads[threadID]; !ok {
		return ErrUnknownThread
	}
	m.important[threadID] = true
	m.ops = append(m.ops, Op{Kind: OpMarkImportant, ThreadID: threadID})
	return nil
}

// Trash moves a thread to the trash.
func (m *Mailbox) Trash(ctx context.Context, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.threads[threadID]; !ok {
		return ErrUnknownThread
	}
	m.trashed[threadID] = true
	m.ops = append(m.ops, Op{Kind: OpTrash, ThreadID: threadID})
	return nil
}

// Ops returns a copy of the recorded mutations in order.
func (m *Mailbox) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Op, len(m.ops))
	copy(out, m.ops)
	return out
}

// HasLabel reports whether a thread carries the named label.
func (m *Mailbox) HasLabel(threadID, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied[threadID][name]
}

// IsStarred reports whether a thread is starred.
func (m *Mailbox) IsStarred(threadID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starred[threadID]
}

// IsImportant reports whether a thread is marked important.
func (m *Mailbox) IsImportant(threadID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.important[threadID]
}

// IsTrashed reports whether a thread has been trashed.
func (m *Mailbox) IsTrashed(threadID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trashed[threadID]
}
