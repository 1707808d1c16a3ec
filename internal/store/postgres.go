package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS check_runs (
		id          BIGSERIAL PRIMARY KEY,
		repository  TEXT        NOT NULL,
		pr_number   INTEGER     NOT NULL,
		last_seen   TEXT        NOT NULL DEFAULT '',
		refs        TEXT[]      NOT NULL,
		degraded    BOOLEAN     NOT NULL DEFAULT FALSE,
		checked_at  TIMESTAMPTZ NOT NULL
	)
`

// Postgres implements Store using PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Store backed by the given pool. Caller must call Close on the pool when done.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates check_runs if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)
	return err
}

// RecordCheck appends one check run to the ledger.
func (p *Postgres) RecordCheck(ctx context.Context, row *CheckRow) error {
	refs := row.Refs
	if refs == nil {
		refs = []string{}
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO check_runs (repository, pr_number, last_seen, refs, degraded, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, row.Repository, row.Number, row.LastSeen, refs, row.Degraded, row.CheckedAt)
	return err
}

// Ping checks the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
