package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pr-commits-resource/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commitsPath = "/api/v3/repos/o/r/pulls/7/commits"

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{Token: "secret", BaseURL: srv.URL, PerPage: 2})
	require.NoError(t, err)
	return c
}

func TestClient_ListPullRequestCommits_Paginates(t *testing.T) {
	var calls int
	var srvURL string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != commitsPath {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		srvURL = "http://" + r.Host
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=2&per_page=2>; rel="next", <%s%s?page=2&per_page=2>; rel="last"`, srvURL, commitsPath, srvURL, commitsPath))
			fmt.Fprint(w, `[{"sha":"a"},{"sha":"b"}]`)
		case "2":
			fmt.Fprint(w, `[{"sha":"c"}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	got, err := c.ListPullRequestCommits(context.Background(), "o", "r", 7)
	require.NoError(t, err)
	assert.Equal(t, []version.Commit{{SHA: "a"}, {SHA: "b"}, {SHA: "c"}}, got)
	assert.Equal(t, 2, calls)
}

func TestClient_ListPullRequestCommits_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	got, err := c.ListPullRequestCommits(context.Background(), "o", "r", 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_ListPullRequestCommits_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	_, err := c.ListPullRequestCommits(context.Background(), "o", "r", 7)
	assert.True(t, errors.Is(err, ErrNotFound), "want ErrNotFound got %v", err)
}

func TestClient_ListPullRequestCommits_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListPullRequestCommits(context.Background(), "o", "r", 7)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Options{Token: "t"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPerPage, c.perPage)
	assert.Equal(t, "https://api.github.com/", c.api.BaseURL.String())
}

func TestNewClient_BadBaseURL(t *testing.T) {
	_, err := NewClient(Options{Token: "t", BaseURL: "://bad"})
	assert.Error(t, err)
}

func TestClient_SkipSSLVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"sha":"a"}]`)
	}))
	t.Cleanup(srv.Close)

	strict, err := NewClient(Options{Token: "t", BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = strict.ListPullRequestCommits(context.Background(), "o", "r", 7)
	assert.Error(t, err, "self-signed certificate must be rejected without the flag")

	insecure, err := NewClient(Options{Token: "t", BaseURL: srv.URL, SkipSSLVerification: true})
	require.NoError(t, err)
	got, err := insecure.ListPullRequestCommits(context.Background(), "o", "r", 7)
	require.NoError(t, err)
	assert.Equal(t, []version.Commit{{SHA: "a"}}, got)
}
