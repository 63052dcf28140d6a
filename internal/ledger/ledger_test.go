package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_MemoryLedger_StoryTotals(t *testing.T) {
	ld := NewMemoryLedger()
	ctx := context.Background()

	now := time.Now()
	assert.NoError(t, ld.Record(ctx, Tip{ID: "t1", StoryID: "s1", AuthorID: "a1", Amount: 5, Token: "WLD", CreatedAt: now}))
	assert.NoError(t, ld.Record(ctx, Tip{ID: "t2", StoryID: "s1", AuthorID: "a1", Amount: 2.5, Token: "WLD", CreatedAt: now}))
	assert.NoError(t, ld.Record(ctx, Tip{ID: "t3", StoryID: "s1", AuthorID: "a1", Amount: 1, Token: "USDC", CreatedAt: now}))
	assert.NoError(t, ld.Record(ctx, Tip{ID: "t4", StoryID: "s2", AuthorID: "a2", Amount: 9, Token: "WLD", CreatedAt: now}))

	totals, err := ld.StoryTotal(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, 7.5, totals["WLD"])
	assert.Equal(t, 1.0, totals["USDC"])

	totals, err = ld.StoryTotal(ctx, "unknown")
	assert.NoError(t, err)
	assert.Empty(t, totals)
}

func Test_MemoryLedger_ByAuthor(t *testing.T) {
	ld := NewMemoryLedger()
	ctx := context.Background()

	base := time.Now()
	assert.NoError(t, ld.Record(ctx, Tip{ID: "old", StoryID: "s1", AuthorID: "a1", Amount: 1, Token: "WLD", CreatedAt: base.Add(-time.Hour)}))
	assert.NoError(t, ld.Record(ctx, Tip{ID: "new", StoryID: "s1", AuthorID: "a1", Amount: 2, Token: "WLD", CreatedAt: base}))
	assert.NoError(t, ld.Record(ctx, Tip{ID: "other", StoryID: "s2", AuthorID: "a2", Amount: 3, Token: "WLD", CreatedAt: base}))

	tips, err := ld.ByAuthor(ctx, "a1")
	assert.NoError(t, err)
	assert.Len(t, tips, 2)
	assert.Equal(t, "new", tips[0].ID, "newest first")
	assert.Equal(t, "old", tips[1].ID)

	tips, err = ld.ByAuthor(ctx, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, tips)
}
