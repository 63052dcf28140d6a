package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// OpenPostgres opens and pings. The caller owns the returned handle.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
