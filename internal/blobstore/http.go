package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPStore uploads and deletes objects against a token-authenticated blob
// endpoint. PUT /{path} stores bytes and returns the public URL; DELETE with
// a url query removes the object.
type HTTPStore struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPStore creates a store client for the given base URL and access token.
func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type putResponse struct {
	URL string `json:"url"`
}

// Put uploads data under path and returns the resolvable URL of the object.
func (s *HTTPStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("blobstore: base URL is empty")
	}
	endpoint := s.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("blobstore: put %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("blobstore: put %s returned %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("blobstore: read put response: %w", err)
	}
	var parsed putResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.URL == "" {
		// Some deployments answer with the bare URL instead of JSON.
		raw := strings.TrimSpace(string(body))
		if raw == "" {
			return "", fmt.Errorf("blobstore: put %s returned no url", path)
		}
		return raw, nil
	}
	return parsed.URL, nil
}

// Delete removes the object addressed by objectURL. The store treats unknown
// URLs as already deleted and answers 2xx; any other failure is returned.
func (s *HTTPStore) Delete(ctx context.Context, objectURL string) error {
	if s.baseURL == "" {
		return fmt.Errorf("blobstore: base URL is empty")
	}
	endpoint := s.baseURL + "/delete?url=" + url.QueryEscape(objectURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("blobstore: delete %s: %w", objectURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("blobstore: delete %s returned %s", objectURL, resp.Status)
	}
	return nil
}

var _ Store = (*HTTPStore)(nil)
