package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rebeliceyang/lazymovies/internal/models"
)

// ErrNotList is returned when the payload's top-level JSON value is not an array
var ErrNotList = errors.New("payload is not a JSON array")

// Source fetches the full movie list in one call
type Source interface {
	Fetch(ctx context.Context) ([]models.MovieRecord, error)
	String() string
}

// SourceOptions configures NewSource
type SourceOptions struct {
	URL     string
	Timeout time.Duration
	Table   string
}

// NewSource picks a source implementation from the URL scheme:
// http(s) for the remote endpoint, postgres(ql) for a database table, and
// file:// or a bare path for a local JSON file.
func NewSource(opts SourceOptions) (Source, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("source url is empty")
	}

	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return NewHTTPSource(opts.URL, opts.Timeout), nil
	case "postgres", "postgresql":
		return NewPostgresSource(opts.URL, opts.Table), nil
	case "file":
		return &FileSource{Path: u.Path}, nil
	case "":
		return &FileSource{Path: opts.URL}, nil
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

// HTTPSource GETs a JSON array of movies from a fixed endpoint
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTP source. A zero timeout means none.
func NewHTTPSource(rawURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    rawURL,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs the GET and decodes the body
func (s *HTTPSource) Fetch(ctx context.Context) ([]models.MovieRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return DecodeRecords(body)
}

func (s *HTTPSource) String() string {
	return s.URL
}

// FileSource reads a JSON array of movies from disk
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file
func (s *FileSource) Fetch(_ context.Context) ([]models.MovieRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read movies file: %w", err)
	}
	return DecodeRecords(data)
}

func (s *FileSource) String() string {
	return s.Path
}

// DecodeRecords decodes a JSON array of movie records
func DecodeRecords(data []byte) ([]models.MovieRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotList
	}

	var records []models.MovieRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}
	if records == nil {
		records = []models.MovieRecord{}
	}
	return records, nil
}

// redact hides credentials in a source description
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
