package store

//go:generate go run go.uber.org/mock/mockgen -destination store_mock.gen.go -package store . Store

import (
	"context"
	"time"
)

// Store is the check ledger. Check depends only on this interface.
// Only main and this package use *pgxpool.Pool.
type Store interface {
	RecordCheck(ctx context.Context, row *CheckRow) error
	Ping(ctx context.Context) error
}

// CheckRow is the row shape for check_runs.
// LastSeen is empty on first run; Degraded is set when LastSeen was given
// but no longer exists in the pull request's history.
type CheckRow struct {
	Repository string
	Number     int
	LastSeen   string
	Refs       []string
	Degraded   bool
	CheckedAt  time.Time
}
