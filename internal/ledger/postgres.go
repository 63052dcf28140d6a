package ledger

import (
	"context"
	"database/sql"
)

type pgLedger struct {
	db *sql.DB
}

const tipsSchema = `
CREATE TABLE IF NOT EXISTS tips (
	id             TEXT PRIMARY KEY,
	story_id       TEXT NOT NULL,
	author_id      TEXT NOT NULL,
	amount         NUMERIC NOT NULL,
	token          TEXT NOT NULL,
	message        TEXT NOT NULL DEFAULT '',
	transaction_id TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS tips_story_idx ON tips (story_id);
CREATE INDEX IF NOT EXISTS tips_author_idx ON tips (author_id, created_at DESC);
`

// NewPostgresLedger ensures the tips table exists and returns a ledger
// backed by it.
func NewPostgresLedger(db *sql.DB) (Ledger, error) {
	if _, err := db.Exec(tipsSchema); err != nil {
		return nil, err
	}
	return &pgLedger{db: db}, nil
}

func (p *pgLedger) Record(ctx context.Context, tip Tip) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO tips (id, story_id, author_id, amount, token, message, transaction_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING`,
		tip.ID, tip.StoryID, tip.AuthorID, tip.Amount, tip.Token, tip.Message, tip.TransactionID, tip.CreatedAt,
	)
	return err
}

func (p *pgLedger) StoryTotal(ctx context.Context, storyID string) (map[string]float64, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT token, SUM(amount) FROM tips WHERE story_id = $1 GROUP BY token`, storyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var token string
		var sum float64
		if err := rows.Scan(&token, &sum); err != nil {
			return nil, err
		}
		totals[token] = sum
	}
	return totals, rows.Err()
}

func (p *pgLedger) ByAuthor(ctx context.Context, authorID string) ([]Tip, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, story_id, author_id, amount, token, message, transaction_id, created_at
		 FROM tips WHERE author_id = $1 ORDER BY created_at DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []Tip
	for rows.Next() {
		var t Tip
		if err := rows.Scan(&t.ID, &t.StoryID, &t.AuthorID, &t.Amount, &t.Token, &t.Message, &t.TransactionID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}
