package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPSource downloads a feed payload once and yields its rows.
type HTTPSource struct {
	client *http.Client
	url    string

	fetched bool
	rows    *Lines
}

func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		client: client,
		url:    url,
	}
}

func (s *HTTPSource) Next(ctx context.Context) (string, error) {
	if !s.fetched {
		payload, err := s.fetch(ctx)
		if err != nil {
			return "", err
		}
		s.rows = NewLines(SplitRows(payload)...)
		s.fetched = true
	}
	return s.rows.Next(ctx)
}

func (s *HTTPSource) Close() error {
	return nil
}

func (s *HTTPSource) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request for %q: %w", s.url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching %q: %w", s.url, err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status fetching %q: %s", s.url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response from %q: %w", s.url, err)
	}
	return string(body), nil
}
