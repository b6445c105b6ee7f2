// Package identityclient resolves user identities against the identity
// authority's internal API on behalf of downstream services.
//
// Lookups are an enrichment, not a hard dependency: every call here degrades
// to an empty result when the authority is unreachable, so the caller's
// primary operation still succeeds with partial data.
package identityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/2003dinijay/ChatStack/internal/logging"
)

const (
	defaultTimeout  = 5 * time.Second
	cacheExpiration = 5 * time.Minute
	cacheCleanup    = 10 * time.Minute
)

// UserSummary is the public projection of a user held by the authority.
// It never carries credentials or OTP state.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Enabled  bool   `json:"enabled"`
}

// Client talks to the identity authority's internal user API.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
	logger  logging.Logger
}

func New(baseURL string, logger logging.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		cache:   cache.New(cacheExpiration, cacheCleanup),
		logger:  logger.With("module", "identityclient"),
	}
}

// ResolveMany resolves a batch of user ids in a single round trip. Input ids
// are deduplicated; cached entries are served locally and only the misses go
// over the wire. Unresolved ids (unknown to the authority, or lost to a
// transport failure) are simply absent from the result map.
func (c *Client) ResolveMany(ctx context.Context, ids []int64) map[int64]UserSummary {
	result := make(map[int64]UserSummary)
	if len(ids) == 0 {
		return result
	}

	var missing []int64
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if v, found := c.cache.Get(cacheKey(id)); found {
			result[id] = v.(UserSummary)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result
	}

	users, err := c.fetchBatch(ctx, missing)
	if err != nil {
		c.logger.Warn(ctx, "batch user lookup failed, degrading to partial result",
			"requested", len(missing), "error", err)
		return result
	}

	for _, u := range users {
		result[u.ID] = u
		c.cache.Set(cacheKey(u.ID), u, cache.DefaultExpiration)
	}
	return result
}

// Resolve is sugar over ResolveMany for a single id. It returns nil when the
// user cannot be resolved, never an error.
func (c *Client) Resolve(ctx context.Context, id int64) *UserSummary {
	if u, ok := c.ResolveMany(ctx, []int64{id})[id]; ok {
		return &u
	}
	return nil
}

// UsernameExists reports whether the authority knows the username. On
// transport error it returns false: this gates a non-critical pre-check only,
// the authoritative uniqueness check still happens inside registration.
func (c *Client) UsernameExists(ctx context.Context, username string) bool {
	return c.exists(ctx, "/internal/users/exists/username/"+url.PathEscape(username))
}

// EmailExists follows the same fail-soft contract as UsernameExists.
func (c *Client) EmailExists(ctx context.Context, email string) bool {
	return c.exists(ctx, "/internal/users/exists/email/"+url.PathEscape(email))
}

func (c *Client) fetchBatch(ctx context.Context, ids []int64) ([]UserSummary, error) {
	body, err := json.Marshal(map[string][]int64{"ids": ids})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/internal/users/batch", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var users []UserSummary
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) exists(ctx context.Context, path string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "existence check failed", "path", path, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var out struct {
		Exists bool `json:"exists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false
	}
	return out.Exists
}

func cacheKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}
