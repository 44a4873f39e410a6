package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ObjectStore abstracts the managed bucket the upload pipeline writes to.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// BucketClient talks to a storage service exposing a bucket REST API
// (PUT object, public object URLs).
type BucketClient struct {
	baseURL    string
	bucket     string
	serviceKey string
	client     *http.Client
}

// NewBucketClient constructs the client. The HTTP client carries no
// global timeout; callers bound each Put through its context.
func NewBucketClient(baseURL, bucket, serviceKey string) *BucketClient {
	return &BucketClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		client:     &http.Client{},
	}
}

// Put writes one object under key. The write is bounded by ctx; a
// deadline overrun surfaces as an error for this object only.
func (c *BucketClient) Put(ctx context.Context, key string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("store object %s: status %d: %s", key, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// PublicURL returns the anonymous read URL for a stored object.
func (c *BucketClient) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, key)
}
