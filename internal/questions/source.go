// Package questions loads, shuffles and queues typing phrases.
package questions

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed data/*.json
var embedded embed.FS

// ErrLevelNotFound reports a level that has no question resource.
var ErrLevelNotFound = errors.New("level not found")

const (
	resourcePrefix = "questions_level"
	resourceSuffix = ".json"
)

// Source fetches the raw phrase list for a level.
type Source interface {
	Fetch(ctx context.Context, level string) ([]string, error)
}

// Lister is implemented by sources that can enumerate their levels.
type Lister interface {
	Levels(ctx context.Context) ([]string, error)
}

// ResourceName returns the file name holding a level's questions.
func ResourceName(level string) string {
	return resourcePrefix + level + resourceSuffix
}

// Decode parses a JSON array of phrase strings.
func Decode(r io.Reader) ([]string, error) {
	var phrases []string
	if err := json.NewDecoder(r).Decode(&phrases); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return phrases, nil
}

// FSSource reads questions_level<N>.json files from a file system.
type FSSource struct {
	FS fs.FS
}

// Embedded returns a source over the question data compiled into the binary.
func Embedded() FSSource {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded question data: %v", err))
	}
	return FSSource{FS: sub}
}

// Fetch implements Source.
func (s FSSource) Fetch(_ context.Context, level string) ([]string, error) {
	file, err := s.FS.Open(ResourceName(level))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("level %s: %w", level, ErrLevelNotFound)
		}
		return nil, fmt.Errorf("failed to open level %s: %w", level, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only question file.
			_ = cerr
		}
	}()
	return Decode(file)
}

// Levels implements Lister.
func (s FSSource) Levels(_ context.Context) ([]string, error) {
	matches, err := fs.Glob(s.FS, resourcePrefix+"*"+resourceSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	levels := make([]string, 0, len(matches))
	for _, m := range matches {
		level := strings.TrimSuffix(strings.TrimPrefix(path.Base(m), resourcePrefix), resourceSuffix)
		if level == "" {
			continue
		}
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels, nil
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status for %s: %s", e.URL, e.Status)
}

// HTTPSource fetches questions_level<N>.json relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource returns a source with a bounded client timeout.
func NewHTTPSource(baseURL string) HTTPSource {
	return HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch implements Source.
func (s HTTPSource) Fetch(ctx context.Context, level string) ([]string, error) {
	url := strings.TrimRight(s.BaseURL, "/") + "/" + ResourceName(level)
	resp, err := s.request(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Status: resp.Status, Code: resp.StatusCode}
	}
	return Decode(resp.Body)
}

func (s HTTPSource) request(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
