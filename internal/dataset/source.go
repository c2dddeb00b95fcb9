package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrUnknownDataset is returned by a Source that has no location for a name.
var ErrUnknownDataset = errors.New("unknown dataset")

// Source fetches the current rows of a named dataset.
type Source interface {
	Fetch(ctx context.Context, name string) ([]Row, error)
}

// HTTPSource downloads CSV exports from BaseURL + gid.
type HTTPSource struct {
	BaseURL string
	GIDs    map[string]string
	Client  *http.Client
}

// NewHTTPSource returns a source with a bounded request timeout.
func NewHTTPSource(baseURL string, gids map[string]string) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		GIDs:    gids,
		Client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// URL returns the export URL for name.
func (s *HTTPSource) URL(name string) (string, bool) {
	gid, ok := s.GIDs[name]
	if !ok {
		return "", false
	}
	return s.BaseURL + gid, true
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]Row, error) {
	url, ok := s.URL(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: unexpected status %d: %s", name, resp.StatusCode, body)
	}
	rows, err := ParseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return rows, nil
}

// FileSource reads <Dir>/<name>.csv.
type FileSource struct {
	Dir string
}

func (s FileSource) Fetch(_ context.Context, name string) ([]Row, error) {
	f, err := os.Open(filepath.Join(s.Dir, filepath.Base(name)+".csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	rows, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return rows, nil
}
