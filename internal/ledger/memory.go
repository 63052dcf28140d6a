package ledger

import (
	"context"
	"sort"
	"sync"
)

type memLedger struct {
	mu   sync.Mutex
	tips []Tip
}

// NewMemoryLedger keeps confirmed tips in process memory. Default when no
// database DSN is configured.
func NewMemoryLedger() Ledger {
	return &memLedger{}
}

func (m *memLedger) Record(ctx context.Context, tip Tip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tips = append(m.tips, tip)
	return nil
}

func (m *memLedger) StoryTotal(ctx context.Context, storyID string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	totals := make(map[string]float64)
	for _, t := range m.tips {
		if t.StoryID == storyID {
			totals[t.Token] += t.Amount
		}
	}
	return totals, nil
}

func (m *memLedger) ByAuthor(ctx context.Context, authorID string) ([]Tip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Tip
	for _, t := range m.tips {
		if t.AuthorID == authorID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
