package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"
	domainerrors "startup-directory.backend/internal/domain/errors"
)

// Client talks to the object storage API (/storage/v1) with the service key
type Client struct {
	baseURL    string
	serviceKey string
}

// NewClient creates a storage client rooted at baseURL
func NewClient(baseURL, serviceKey string) *Client {
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/storage/v1",
		serviceKey: serviceKey,
	}
}

// api returns a fresh client per call; uploads set per-file headers on the client itself
func (c *Client) api() *storage_go.Client {
	return storage_go.NewClient(c.baseURL, c.serviceKey, map[string]string{"apikey": c.serviceKey})
}

// Upload stores content at bucket/path, failing if the object already exists
func (c *Client) Upload(ctx context.Context, bucket, path string, content []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cacheControl := "3600"
	upsert := false
	_, err := c.api().UploadFile(bucket, escapePath(path), bytes.NewReader(content), storage_go.FileOptions{
		CacheControl: &cacheControl,
		ContentType:  &contentType,
		Upsert:       &upsert,
	})
	return translateError(err)
}

// Remove deletes the object at bucket/path
func (c *Client) Remove(ctx context.Context, bucket, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api().RemoveFile(bucket, []string{path})
	return translateError(err)
}

// PublicURL is the unauthenticated download URL of an object in a public bucket
func (c *Client) PublicURL(bucket, path string) string {
	return c.api().GetPublicUrl(bucket, path).SignedURL
}

// SignedURL issues a time-limited download URL for an object in a private bucket
func (c *Client) SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, err := c.api().CreateSignedUrl(bucket, escapePath(path), int(ttl.Seconds()))
	if err != nil {
		return "", translateError(err)
	}
	// the client prefixes the base URL onto whatever the server answered
	signed := strings.TrimPrefix(resp.SignedURL, c.baseURL)
	switch {
	case signed == "":
		return "", fmt.Errorf("%w: empty signed url", domainerrors.ErrUpstream)
	case strings.HasPrefix(signed, "http"):
		return signed, nil
	}
	return resp.SignedURL, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var storageErr *storage_go.StorageError
	if !errors.As(err, &storageErr) {
		return fmt.Errorf("%w: %v", domainerrors.ErrUpstream, err)
	}

	msg := strings.ToLower(storageErr.Message)
	switch {
	case storageErr.Status == 404 || strings.Contains(msg, "not found"):
		return domainerrors.ErrNotFound
	case storageErr.Status == 409 || strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate"):
		return domainerrors.ErrAlreadyExists
	default:
		return fmt.Errorf("%w: storage request failed: %s", domainerrors.ErrUpstream, storageErr.Message)
	}
}

func escapePath(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
