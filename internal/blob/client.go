// Package blob is a thin client for the external blob store that holds
// meeting recordings. Only URL resolution is needed here; uploads happen
// elsewhere.
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Store resolves blob ids to retrievable URLs
type Store interface {
	GetURL(ctx context.Context, blobID string) (string, error)
}

// HTTPStore talks to the blob service's REST API
type HTTPStore struct {
	endpoint string
	client   *http.Client
}

// NewHTTPStore creates a blob store client
func NewHTTPStore(endpoint string, timeout time.Duration) *HTTPStore {
	return &HTTPStore{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *HTTPStore) GetURL(ctx context.Context, blobID string) (string, error) {
	url := fmt.Sprintf("%s/blobs/%s/url", s.endpoint, blobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("blob store returned status %d", resp.StatusCode)
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.URL == "" {
		return "", fmt.Errorf("blob store returned empty url for %s", blobID)
	}
	return body.URL, nil
}
