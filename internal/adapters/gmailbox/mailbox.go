// Package gmailbox implements the mailbox driver on the Gmail REST
// API. Authentication uses an OAuth2 client-credentials file plus a
// previously obtained token file, the standard Gmail API flow.
package gmailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mikey/mail-triage/internal/core"
)

// Gmail system labels used for starring and importance.
const (
	labelStarred   = "STARRED"
	labelImportant = "IMPORTANT"
)

// Config carries the settings needed to reach the Gmail API.
type Config struct {
	CredentialsFile string
	TokenFile       string
	User            string
	MaxBodySize     int
}

// Mailbox is the Gmail implementation of core.Mailbox.
type Mailbox struct {
	svc         *gmailapi.Service
	logger      *zap.Logger
	user        string
	maxBodySize int

	mu       sync.Mutex
	labelIDs map[string]string
}

// NewMailbox creates a Gmail mailbox driver.
func NewMailbox(ctx context.Context, cfg Config, logger *zap.Logger) (*Mailbox, error) {
	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(creds, gmailapi.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	token, err := loadToken(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load token file: %w", err)
	}
	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	user := cfg.User
	if user == "" {
		user = "me"
	}

	return &Mailbox{
		svc:         svc,
		logger:      logger,
		user:        user,
		maxBodySize: cfg.MaxBodySize,
		labelIDs:    make(map[string]string),
	}, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

// ListThreads queries one view for threads not yet carrying the
// exclusion label and fetches each thread in full. A thread that
// fails to fetch is logged and skipped; it stays unprocessed and is
// picked up again on the next run.
func (m *Mailbox) ListThreads(ctx context.Context, view, excludeLabel string, max int64) ([]*core.Thread, error) {
	query := fmt.Sprintf("in:%s", view)
	if excludeLabel != "" {
		query = fmt.Sprintf("%s -label:%s", query, excludeLabel)
	}

	call := m.svc.Users.Threads.List(m.user).Q(query).Context(ctx)
	if max > 0 {
		call = call.MaxResults(max)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	threads := make([]*core.Thread, 0, len(resp.Threads))
	for _, ref := range resp.Threads {
		full, err := m.svc.Users.Threads.Get(m.user, ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			m.logger.Error("Failed to fetch thread",
				zap.String("thread_id", ref.Id),
				zap.Error(err))
			continue
		}
		threads = append(threads, m.toThread(full))
	}

	m.logger.Debug("Listed threads",
		zap.String("view", view),
		zap.String("query", query),
		zap.Int("count", len(threads)))
	return threads, nil
}

// EnsureLabel creates the label if absent. Safe to call repeatedly.
func (m *Mailbox) EnsureLabel(ctx context.Context, name string) error {
	_, err := m.labelID(ctx, name)
	return err
}

// labelID resolves a label name to its Gmail ID, consulting the local
// cache, then the API, then creating the label.
func (m *Mailbox) labelID(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	id, ok := m.labelIDs[name]
	m.mu.Unlock()
	if ok {
		return id, nil
	}

	resp, err := m.svc.Users.Labels.List(m.user).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list labels: %w", err)
	}
	m.mu.Lock()
	for _, l := range resp.Labels {
		m.labelIDs[l.Name] = l.Id
	}
	id, ok = m.labelIDs[name]
	m.mu.Unlock()
	if ok {
		return id, nil
	}

	created, err := m.svc.Users.Labels.Create(m.user, &gmailapi.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create label %q: %w", name, err)
	}
	m.logger.Info("Created label",
		zap.String("name", name),
		zap.String("id", created.Id))

	m.mu.Lock()
	m.labelIDs[name] = created.Id
	m.mu.Unlock()
	return created.Id, nil
}

// ApplyLabel attaches a named label to a thread, creating the label
// on first use.
func (m *Mailbox) ApplyLabel(ctx context.Context, threadID, name string) error {
	id, err := m.labelID(ctx, name)
	if err != nil {
		return err
	}
	return m.addLabel(ctx, threadID, id)
}

// Star stars a thread.
func (m *Mailbox) Star(ctx context.Context, threadID string) error {
	return m.addLabel(ctx, threadID, labelStarred)
}

// MarkImportant marks a thread important.
func (m *Mailbox) MarkImportant(ctx context.Context, threadID string) error {
	return m.addLabel(ctx, threadID, labelImportant)
}

func (m *Mailbox) addLabel(ctx context.Context, threadID, labelID string) error {
	_, err := m.svc.Users.Threads.Modify(m.user, threadID, &gmailapi.ModifyThreadRequest{
		AddLabelIds: []string{labelID},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to modify thread %s: %w", threadID, err)
	}
	return nil
}

// Trash moves a thread to the trash.
func (m *Mailbox) Trash(ctx context.Context, threadID string) error {
	if _, err := m.svc.Users.Threads.Trash(m.user, threadID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to trash thread %s: %w", threadID, err)
	}
	return nil
}
