package github

import "time"

// Options configures a Client.
// BaseURL is optional; when set it points the client at a GitHub Enterprise
// API (or an httptest.Server in tests) instead of api.github.com.
type Options struct {
	Token               string
	BaseURL             string
	SkipSSLVerification bool
	PerPage             int
	Timeout             time.Duration
}

const (
	DefaultPerPage = 100
	DefaultTimeout = 30 * time.Second
)
