package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Provider names, used in errors, logs and metrics.
const (
	NameJikan  = "jikan"
	NameTMDB   = "tmdb"
	NameReview = "rottentomatoes"
)

// maxBodyBytes caps provider response bodies.
const maxBodyBytes = 5 << 20

// ErrNoResult is returned when a provider answered but had nothing usable.
var ErrNoResult = errors.New("no result")

// Record is the normalized partial title returned by the anime catalog.
// Empty fields mean the provider had no value.
type Record struct {
	// CatalogID is the provider's own identifier for the title.
	CatalogID   int
	Description string
	PosterURL   string
	ReleaseYear int
	Genres      []string
	// StreamingLink is the first streaming entry matching the target service.
	StreamingLink string
	// IMDbLink comes from the secondary external-links lookup.
	IMDbLink string
}

// Error is a traceable provider failure.
type Error struct {
	Provider string
	Stage    string // "request", "decode" or "parse"
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider=%s stage=%s: %v", e.Provider, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx provider response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// NewHTTPClient builds the HTTP client shared by the provider clients.
func NewHTTPClient(cfg Config) *http.Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &http.Client{Timeout: time.Duration(timeout) * time.Second}
}

// fetcher performs GET requests for one provider.
type fetcher struct {
	name      string
	client    *http.Client
	userAgent string
}

func (f fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Provider: f.name, Stage: "request", Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{Provider: f.name, Stage: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &Error{Provider: f.name, Stage: "request", Err: &HTTPStatusError{URL: rawURL, StatusCode: resp.StatusCode}}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Provider: f.name, Stage: "request", Err: err}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &Error{Provider: f.name, Stage: "decode", Err: ErrNoResult}
	}
	return body, nil
}

func (f fetcher) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := f.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Provider: f.name, Stage: "decode", Err: err}
	}
	return nil
}

func (f fetcher) noResult(stage string) error {
	return &Error{Provider: f.name, Stage: stage, Err: ErrNoResult}
}
