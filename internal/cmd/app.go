package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/pr-commits-resource/internal/check"
	"github.com/pr-commits-resource/internal/config"
	"github.com/pr-commits-resource/internal/github"
	"github.com/pr-commits-resource/internal/resource"
	"github.com/pr-commits-resource/internal/store"
)

// defaultPayloadFile is read instead of stdin when present in the working
// directory. Handy for replaying a payload by hand.
const defaultPayloadFile = "payload"

// ListerFactory builds the commit lister for a parsed source.
type ListerFactory func(src resource.Source, cfg *config.Config) (github.CommitLister, error)

// NewGithubLister is the production ListerFactory.
func NewGithubLister(src resource.Source, cfg *config.Config) (github.CommitLister, error) {
	c, err := github.NewClient(github.Options{
		Token:               src.AccessToken,
		BaseURL:             src.V3Endpoint,
		SkipSSLVerification: src.SkipSSLVerification,
		PerPage:             cfg.PerPage,
		Timeout:             time.Duration(cfg.HTTPTimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// App creates the check CLI application. Set Reader, Writer and ErrWriter on
// the returned app to redirect stdin, stdout and stderr.
func App(newLister ListerFactory) *cli.App {
	return &cli.App{
		Name:            "check",
		Usage:           "Emit new pull request commits as resource versions",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "payload",
				Aliases: []string{"p"},
				Usage:   "Read the check payload from this file instead of stdin",
				EnvVars: []string{"CHECK_PAYLOAD"},
			},
		},
		Action: func(c *cli.Context) error {
			return checkAction(c, newLister)
		},
	}
}

func checkAction(c *cli.Context, newLister ListerFactory) error {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: cfg.LogLevel})))

	in, closeIn, err := openPayload(c.String("payload"), c.App.Reader)
	if err != nil {
		return err
	}
	defer closeIn()

	req, err := resource.ParseRequest(in)
	if err != nil {
		return err
	}

	lister, err := newLister(req.Source, cfg)
	if err != nil {
		return fmt.Errorf("create github client: %w", err)
	}

	ctx := c.Context
	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, pool := openStore(ctx, cfg.DatabaseURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second)
		if pool != nil {
			defer pool.Close()
			st = pg
		}
	}

	records, err := check.NewChecker(lister, st).Run(ctx, req)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal versions: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

// openPayload picks the payload source: explicit path, then the payload file
// in the working directory, then stdin.
func openPayload(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		if _, err := os.Stat(defaultPayloadFile); err == nil {
			path = defaultPayloadFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("stat payload file: %w", err)
		}
	}
	if path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open payload: %w", err)
	}
	slog.Debug("reading payload from file", "path", path)
	return f, func() { _ = f.Close() }, nil
}

// openStore connects the check ledger within timeout. Failures are logged
// and the check proceeds without a ledger; pool is nil in that case.
func openStore(ctx context.Context, databaseURL string, timeout time.Duration) (*store.Postgres, *pgxpool.Pool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		slog.Warn("connect to database, ledger disabled", "err", err)
		return nil, nil
	}
	pg := store.NewPostgres(pool)
	if err := pg.Ping(ctx); err != nil {
		slog.Warn("ping database, ledger disabled", "err", err)
		pool.Close()
		return nil, nil
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		slog.Warn("ensure ledger schema, ledger disabled", "err", err)
		pool.Close()
		return nil, nil
	}
	slog.Debug("database connected")
	return pg, pool
}
