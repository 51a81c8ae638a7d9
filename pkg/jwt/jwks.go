package jwt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v3"
)

// JWKSKeySet fetches and caches the identity provider's published signing keys.
// An unknown kid triggers a refetch, at most once per minRefresh.
type JWKSKeySet struct {
	url        string
	client     *http.Client
	minRefresh time.Duration

	mu        sync.RWMutex
	keys      jose.JSONWebKeySet
	fetchedAt time.Time
}

// NewJWKSKeySet creates a key set backed by url
func NewJWKSKeySet(url string, client *http.Client) *JWKSKeySet {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &JWKSKeySet{url: url, client: client, minRefresh: time.Minute}
}

// Key returns the public key for kid
func (k *JWKSKeySet) Key(ctx context.Context, kid string) (interface{}, error) {
	if key, ok := k.lookup(kid); ok {
		return key, nil
	}

	k.mu.RLock()
	recent := !k.fetchedAt.IsZero() && time.Since(k.fetchedAt) < k.minRefresh
	k.mu.RUnlock()
	if recent {
		return nil, ErrInvalidToken
	}

	if err := k.refresh(ctx); err != nil {
		return nil, err
	}
	if key, ok := k.lookup(kid); ok {
		return key, nil
	}
	return nil, ErrInvalidToken
}

func (k *JWKSKeySet) lookup(kid string) (interface{}, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	for _, jwk := range k.keys.Key(kid) {
		if jwk.Use == "" || jwk.Use == "sig" {
			return jwk.Key, true
		}
	}
	return nil, false
}

func (k *JWKSKeySet) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return fmt.Errorf("jwks request: %w", err)
	}
	resp, err := k.client.Do(req)
	if err != nil {
		return fmt.Errorf("jwks fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks fetch: unexpected status %d", resp.StatusCode)
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("jwks decode: %w", err)
	}

	k.mu.Lock()
	k.keys = set
	k.fetchedAt = time.Now()
	k.mu.Unlock()
	return nil
}
