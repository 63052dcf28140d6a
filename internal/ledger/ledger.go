package ledger

import (
	"context"
	"time"
)

// Tip is a confirmed, verified tip. Pending intents never reach the ledger.
type Tip struct {
	ID            string    `json:"id"`
	StoryID       string    `json:"storyId"`
	AuthorID      string    `json:"authorId"`
	Amount        float64   `json:"amount"`
	Token         string    `json:"token"`
	Message       string    `json:"message,omitempty"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Ledger interface {
	Record(ctx context.Context, tip Tip) error
	// StoryTotal sums recorded amounts for a story, per token.
	StoryTotal(ctx context.Context, storyID string) (map[string]float64, error)
	// ByAuthor lists an author's received tips, newest first.
	ByAuthor(ctx context.Context, authorID string) ([]Tip, error)
}
