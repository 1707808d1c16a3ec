package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pr-commits-resource/internal/github"
	"github.com/pr-commits-resource/internal/resource"
	"github.com/pr-commits-resource/internal/store"
	"github.com/pr-commits-resource/internal/version"
)

// Checker runs one check: list commits, resolve new versions, record them.
// The store is optional; ledger writes never fail a check.
type Checker struct {
	lister github.CommitLister
	store  store.Store
	now    func() time.Time
	log    *slog.Logger
}

// NewChecker returns a checker. s may be nil to disable the ledger.
func NewChecker(l github.CommitLister, s store.Store) *Checker {
	return &Checker{lister: l, store: s, now: time.Now, log: slog.Default()}
}

// Run returns the versions to emit for req, oldest-first.
func (c *Checker) Run(ctx context.Context, req *resource.Request) ([]version.Record, error) {
	owner, name, err := req.Source.OwnerAndName()
	if err != nil {
		return nil, err
	}
	commits, err := c.lister.ListPullRequestCommits(ctx, owner, name, req.Source.Number)
	if err != nil {
		return nil, fmt.Errorf("fetch commits: %w", err)
	}

	lastSeen := req.LastSeen()
	records := version.Resolve(commits, lastSeen)
	degraded := lastSeen != nil && !version.Found(commits, lastSeen)
	if degraded {
		c.log.Warn("last seen version not in pull request history, resyncing to tip",
			"repo", req.Source.Repository, "number", req.Source.Number, "sha", lastSeen.SHA)
	}
	c.log.Info("check resolved", "repo", req.Source.Repository, "number", req.Source.Number,
		"commits", len(commits), "versions", len(records))

	if c.store != nil {
		c.record(ctx, req, lastSeen, records, degraded)
	}
	return records, nil
}

func (c *Checker) record(ctx context.Context, req *resource.Request, lastSeen *version.Version, records []version.Record, degraded bool) {
	row := &store.CheckRow{
		Repository: req.Source.Repository,
		Number:     req.Source.Number,
		Refs:       make([]string, 0, len(records)),
		Degraded:   degraded,
		CheckedAt:  c.now().UTC(),
	}
	if lastSeen != nil {
		row.LastSeen = lastSeen.SHA
	}
	for _, r := range records {
		row.Refs = append(row.Refs, r.Ref)
	}
	if err := c.store.RecordCheck(ctx, row); err != nil {
		c.log.Warn("record check", "repo", row.Repository, "number", row.Number, "err", err)
		return
	}
	c.log.Debug("check recorded", "repo", row.Repository, "number", row.Number, "refs", len(row.Refs))
}
