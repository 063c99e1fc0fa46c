// Package source abstracts where gallery photos come from: the Unsplash API
// when a credential is configured, or a deterministic mock set otherwise.
package source

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/photo"
)

// Source returns one page of photos. An empty query selects browse mode.
type Source interface {
	Fetch(ctx context.Context, page int, query string) ([]photo.Photo, error)
}

// CredentialPolicy decides what happens when no API key is configured.
type CredentialPolicy string

const (
	// PolicyMock serves the local mock set.
	PolicyMock CredentialPolicy = "mock"
	// PolicyError keeps the remote source and fails every fetch with
	// ErrMissingCredential.
	PolicyError CredentialPolicy = "error"
)

// ParsePolicy maps a config value onto a policy. Unknown values yield
// PolicyMock and false.
func ParsePolicy(value string) (CredentialPolicy, bool) {
	switch CredentialPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyMock:
		return PolicyMock, true
	case PolicyError:
		return PolicyError, true
	default:
		return PolicyMock, false
	}
}

// Options configure New.
type Options struct {
	APIKey           string
	BaseURL          string
	PageSize         int
	MockSize         int
	MissingKeyPolicy CredentialPolicy
}

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 25

// New selects the photo source for opts.
func New(opts Options) (Source, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if strings.TrimSpace(opts.APIKey) == "" && opts.MissingKeyPolicy != PolicyError {
		klog.Infof("no API key configured, serving %d mock photos", mockSizeOrDefault(opts.MockSize))
		return NewMock(opts.MockSize, pageSize), nil
	}

	client, err := NewUnsplash(opts.BaseURL, opts.APIKey, pageSize)
	if err != nil {
		return nil, fmt.Errorf("init unsplash client: %w", err)
	}
	return client, nil
}
