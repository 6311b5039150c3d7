package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/core"
)

func TestMemoryAuditRecordAndCleanup(t *testing.T) {
	journal := NewMemoryAudit(zap.NewNop(), time.Hour, time.Hour)
	defer journal.Stop()
	ctx := context.Background()

	fresh := &core.AuditEntry{
		RunID:       "r1",
		ThreadID:    "t1",
		Action:      core.ActionFlagImportant,
		ProcessedAt: time.Now(),
	}
	stale := &core.AuditEntry{
		RunID:       "r0",
		ThreadID:    "t0",
		Action:      core.ActionNone,
		ProcessedAt: time.Now().Add(-2 * time.Hour),
	}

	require.NoError(t, journal.Record(ctx, stale))
	require.NoError(t, journal.Record(ctx, fresh))
	assert.Len(t, journal.Entries(), 2)

	require.NoError(t, journal.Cleanup(ctx))
	entries := journal.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "t1", entries[0].ThreadID)
}

func TestNopAudit(t *testing.T) {
	journal := NewNopAudit()
	ctx := context.Background()

	assert.NoError(t, journal.Record(ctx, &core.AuditEntry{ThreadID: "t1"}))
	assert.NoError(t, journal.Cleanup(ctx))
}
