package github

//go:generate go run go.uber.org/mock/mockgen -destination client_mock.gen.go -package github . CommitLister

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/pr-commits-resource/internal/version"
)

var ErrNotFound = errors.New("not found")

// CommitLister lists the commits of a pull request (used by check).
type CommitLister interface {
	ListPullRequestCommits(ctx context.Context, owner, repo string, number int) ([]version.Commit, error)
}

// Client implements CommitLister using the GitHub REST API.
type Client struct {
	api     *gh.Client
	perPage int
	log     *slog.Logger
}

// NewClient returns a GitHub API client authenticated with opts.Token.
func NewClient(opts Options) (*Client, error) {
	base := &http.Client{Timeout: opts.Timeout}
	if base.Timeout <= 0 {
		base.Timeout = DefaultTimeout
	}
	if opts.SkipSSLVerification {
		base.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	httpClient.Timeout = base.Timeout

	api := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		var err error
		api, err = api.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse v3 endpoint: %w", err)
		}
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Client{api: api, perPage: perPage, log: slog.Default()}, nil
}

// ListPullRequestCommits fetches every page of the pull request's commit
// list, oldest-first. Returns ErrNotFound on 404.
func (c *Client) ListPullRequestCommits(ctx context.Context, owner, repo string, number int) ([]version.Commit, error) {
	opt := &gh.ListOptions{PerPage: c.perPage}
	var commits []version.Commit
	for {
		page, resp, err := c.api.PullRequests.ListCommits(ctx, owner, repo, number, opt)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("pull request %s/%s#%d: %w", owner, repo, number, ErrNotFound)
			}
			return nil, fmt.Errorf("list commits %s/%s#%d: %w", owner, repo, number, err)
		}
		for _, rc := range page {
			commits = append(commits, version.Commit{SHA: rc.GetSHA()})
		}
		c.log.Debug("commits page fetched", "repo", owner+"/"+repo, "number", number, "page", opt.Page, "count", len(page))
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return commits, nil
}
