// Package storage uploads payment-proof screenshots to Supabase Storage and
// hands back publicly retrievable URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client talks to the Supabase Storage HTTP API for a single bucket.
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewFromEnv builds a client from SUPABASE_URL, SUPABASE_SERVICE_KEY and
// STORAGE_BUCKET (default "investments").
func NewFromEnv() (*Client, error) {
	base := strings.TrimRight(os.Getenv("SUPABASE_URL"), "/")
	key := os.Getenv("SUPABASE_SERVICE_KEY")
	if base == "" || key == "" {
		return nil, fmt.Errorf("storage not configured: set SUPABASE_URL and SUPABASE_SERVICE_KEY")
	}
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "investments"
	}
	return &Client{
		baseURL:    base + "/storage/v1",
		serviceKey: key,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Upload stores the object under the given path and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	urlStr := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage upload failed: status=%d body=%s", resp.StatusCode, body)
	}

	return c.PublicURL(objectPath), nil
}

// PublicURL returns the public URL for an object in the bucket
func (c *Client) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, objectPath)
}
