package identityclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2003dinijay/ChatStack/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newAuthorityStub serves the internal user API for a fixed user set and
// counts batch calls.
func newAuthorityStub(t *testing.T, users map[int64]UserSummary, batchCalls *atomic.Int64, lastIDs *[]int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/users/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		batchCalls.Add(1)
		var req struct {
			IDs []int64 `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*lastIDs = req.IDs

		var out []UserSummary
		for _, id := range req.IDs {
			if u, ok := users[id]; ok {
				out = append(out, u)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(out))
	})
	mux.HandleFunc("/internal/users/exists/username/alice", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"exists": true})
	})
	return httptest.NewServer(mux)
}

func TestResolveMany_EmptyInputMakesNoCall(t *testing.T) {
	var calls atomic.Int64
	var lastIDs []int64
	srv := newAuthorityStub(t, nil, &calls, &lastIDs)
	defer srv.Close()

	c := New(srv.URL, testLogger())
	got := c.ResolveMany(context.Background(), nil)

	assert.Empty(t, got)
	assert.Equal(t, int64(0), calls.Load())
}

func TestResolveMany_DeduplicatesIDs(t *testing.T) {
	users := map[int64]UserSummary{
		1: {ID: 1, Username: "alice", Email: "a@x.com", Enabled: true},
		2: {ID: 2, Username: "bob", Email: "b@x.com", Enabled: true},
	}
	var calls atomic.Int64
	var lastIDs []int64
	srv := newAuthorityStub(t, users, &calls, &lastIDs)
	defer srv.Close()

	c := New(srv.URL, testLogger())
	got := c.ResolveMany(context.Background(), []int64{1, 2, 1, 2, 1})

	assert.Equal(t, int64(1), calls.Load(), "a batch must cost one round trip")
	assert.Len(t, lastIDs, 2, "duplicate ids must collapse before the wire")
	assert.Equal(t, users[1], got[1])
	assert.Equal(t, users[2], got[2])
}

func TestResolveMany_UnknownIDsAbsentFromResult(t *testing.T) {
	users := map[int64]UserSummary{1: {ID: 1, Username: "alice"}}
	var calls atomic.Int64
	var lastIDs []int64
	srv := newAuthorityStub(t, users, &calls, &lastIDs)
	defer srv.Close()

	c := New(srv.URL, testLogger())
	got := c.ResolveMany(context.Background(), []int64{1, 99})

	assert.Contains(t, got, int64(1))
	assert.NotContains(t, got, int64(99))
}

func TestResolveMany_UnreachableAuthorityDegradesToEmpty(t *testing.T) {
	c := New("http://127.0.0.1:1", testLogger())
	got := c.ResolveMany(context.Background(), []int64{1, 2, 3})
	assert.Empty(t, got)
}

func TestResolveMany_CachesResolvedUsers(t *testing.T) {
	users := map[int64]UserSummary{1: {ID: 1, Username: "alice"}}
	var calls atomic.Int64
	var lastIDs []int64
	srv := newAuthorityStub(t, users, &calls, &lastIDs)
	defer srv.Close()

	c := New(srv.URL, testLogger())
	_ = c.ResolveMany(context.Background(), []int64{1})
	got := c.ResolveMany(context.Background(), []int64{1})

	assert.Equal(t, int64(1), calls.Load(), "second lookup must hit the cache")
	assert.Equal(t, users[1], got[1])
}

func TestResolve_SingleID(t *testing.T) {
	users := map[int64]UserSummary{7: {ID: 7, Username: "carol"}}
	var calls atomic.Int64
	var lastIDs []int64
	srv := newAuthorityStub(t, users, &calls, &lastIDs)
	defer srv.Close()

	c := New(srv.URL, testLogger())

	u := c.Resolve(context.Background(), 7)
	require.NotNil(t, u)
	assert.Equal(t, "carol", u.Username)

	assert.Nil(t, c.Resolve(context.Background(), 8))
}

func TestExists_FailSoft(t *testing.T) {
	var calls atomic.Int64
	var lastIDs []int64
	srv := newAuthorityStub(t, nil, &calls, &lastIDs)
	defer srv.Close()

	c := New(srv.URL, testLogger())
	assert.True(t, c.UsernameExists(context.Background(), "alice"))
	assert.False(t, c.UsernameExists(context.Background(), "nobody"))

	down := New("http://127.0.0.1:1", testLogger())
	assert.False(t, down.UsernameExists(context.Background(), "alice"))
	assert.False(t, down.EmailExists(context.Background(), "a@x.com"))
}
