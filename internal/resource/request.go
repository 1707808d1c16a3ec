package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pr-commits-resource/internal/version"
)

var (
	// ErrMissingSource and MissingFieldError carry the user-facing diagnostics
	// printed verbatim to stderr, hence the capitalized text.
	ErrMissingSource       = errors.New("Must pass 'source' on STDIN")
	ErrMalformedRepository = errors.New("malformed repository")
)

// requiredFields are checked in this order; the first missing one is reported.
var requiredFields = []string{"access_token", "repository", "number"}

// MissingFieldError names a required source field absent from the payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Must set source.%s on STDIN", e.Field)
}

// Source is the resource configuration from the pipeline.
type Source struct {
	AccessToken         string           `json:"access_token"`
	Repository          string           `json:"repository"`
	Number              int              `json:"number"`
	Version             *version.Version `json:"version,omitempty"`
	V3Endpoint          string           `json:"v3_endpoint,omitempty"`
	SkipSSLVerification bool             `json:"skip_ssl_verification,omitempty"`
}

// Request is the check payload read from stdin.
// A top-level version object, if sent, is ignored; the checkpoint is only
// read from source.version.
type Request struct {
	Source Source `json:"source"`
}

// ParseRequest decodes and validates a check payload. Required fields are
// validated by key presence, so a present key with a zero value passes.
func ParseRequest(r io.Reader) (*Request, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var raw struct {
		Source map[string]json.RawMessage `json:"source"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	if raw.Source == nil {
		return nil, ErrMissingSource
	}
	for _, field := range requiredFields {
		if _, ok := raw.Source[field]; !ok {
			return nil, &MissingFieldError{Field: field}
		}
	}

	req := new(Request)
	if err := json.Unmarshal(body, req); err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	return req, nil
}

// LastSeen returns source.version, or nil on first run.
func (r *Request) LastSeen() *version.Version {
	return r.Source.Version
}

// OwnerAndName splits "owner/name".
func (s Source) OwnerAndName() (owner, name string, err error) {
	parts := strings.Split(s.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedRepository, s.Repository)
	}
	return parts[0], parts[1], nil
}
