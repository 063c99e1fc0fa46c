package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/galleria/internal/photo"
)

// Ensure Unsplash implements Source at compile time.
var _ Source = (*Unsplash)(nil)

// Unsplash talks to the Unsplash HTTP API.
type Unsplash struct {
	baseURL   *url.URL
	http      *http.Client
	apiKey    string
	pageSize  int
	userAgent string
}

const (
	DefaultBaseURL   = "https://api.unsplash.com"
	defaultUserAgent = "galleria/0.1"
	requestTimeout   = 10 * time.Second
)

// NewUnsplash builds a client for baseURL (DefaultBaseURL when empty).
func NewUnsplash(baseURL, apiKey string, pageSize int) (*Unsplash, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Unsplash{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		apiKey:    strings.TrimSpace(apiKey),
		pageSize:  pageSize,
		userAgent: defaultUserAgent,
	}, nil
}

// Fetch lists recent photos, or searches when query is non-empty.
func (c *Unsplash) Fetch(ctx context.Context, page int, query string) ([]photo.Photo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.apiKey == "" {
		return nil, &FetchError{Err: ErrMissingCredential}
	}
	if page < 1 {
		page = 1
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(c.pageSize))

	if query == "" {
		rel := &url.URL{Path: "/photos", RawQuery: values.Encode()}
		var payload []unsplashPhoto
		if err := c.doURL(ctx, rel, &payload); err != nil {
			return nil, err
		}
		return normalize(payload), nil
	}

	values.Set("query", query)
	rel := &url.URL{Path: "/search/photos", RawQuery: values.Encode()}
	var payload searchResponse
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return normalize(payload.Results), nil
}

func (c *Unsplash) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &FetchError{URL: rel.Path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Client-ID "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: rel.Path, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: rel.Path, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &FetchError{URL: rel.Path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
