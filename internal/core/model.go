package core

import (
	"time"
)

// Message is a single mail message as supplied by the mailbox driver.
// It is read-only input; classification never mutates it.
type Message struct {
	From        string
	ReplyTo     string
	Subject     string
	Body        string
	AuthResults string
	Headers     map[string][]string
}

// Thread is a conversation grouping one or more messages. It is the
// unit of user-visible action (label, star, trash).
type Thread struct {
	ID       string
	Messages []*Message
}

// Signals are the normalized inputs to the detectors, recomputed for
// every message. Domain fields are empty when no address-like pattern
// matched.
type Signals struct {
	SenderDomain  string
	ReplyToDomain string
	URLs          []string
	SPFPass       bool
	DKIMPass      bool
}

// Verdict is the three-way classification outcome. At the message
// level Spam and Suspicious are mutually exclusive, and Important
// overrides both.
type Verdict struct {
	Important  bool
	Suspicious bool
	Spam       bool
}

// Merge ORs another verdict into v field by field. Folding message
// verdicts this way yields the thread verdict: any message in the
// thread flips the thread-level flag.
func (v Verdict) Merge(other Verdict) Verdict {
	return Verdict{
		Important:  v.Important || other.Important,
		Suspicious: v.Suspicious || other.Suspicious,
		Spam:       v.Spam || other.Spam,
	}
}

// Action is the thread-level operation selected from a thread verdict.
type Action string

const (
	ActionNone           Action = "none"
	ActionTrash          Action = "trash"
	ActionFlagSuspicious Action = "flag_suspicious"
	ActionFlagImportant  Action = "flag_important"
)

// ThreadResult records the outcome of handling one thread. Err is set
// when a driver call failed; the batch continues regardless.
type ThreadResult struct {
	ThreadID string
	View     string
	Verdict  Verdict
	Action   Action
	Err      error
}

// RunSummary aggregates the outcome of one batch run.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	Threads    int
	Trashed    int
	Suspicious int
	Important  int
	Failed     int
}

// AuditEntry is one row of the run journal.
type AuditEntry struct {
	RunID       string
	View        string
	ThreadID    string
	Important   bool
	Suspicious  bool
	Spam        bool
	Action      Action
	Error       string
	ProcessedAt time.Time
}
