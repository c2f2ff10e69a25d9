package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fydblock/fydadmin/internal/domain"
	"github.com/fydblock/fydadmin/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(session.OpenOptions{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRequestsWithoutTokenFailBeforeNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestStore(t))
	_, err := client.ListBots(context.Background())

	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, atomic.LoadInt32(&hits), "no request may leave the client while logged out")
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetToken("tok-123"))

	client := NewClient(srv.URL, store)
	_, err := client.ListUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetToken("stale"))

	client := NewClient(srv.URL, store)
	_, err := client.ListLogs(context.Background())

	assert.ErrorIs(t, err, ErrSessionExpired)
	_, ok, _ := store.Token()
	assert.False(t, ok, "stale token must be cleared on 401")

	// The very next call fails locally; the session is gone.
	_, err = client.ListLogs(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAPIErrorMessageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"bot name already taken"}`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetToken("tok"))

	client := NewClient(srv.URL, store)
	draft := domain.NewBotDraft()
	draft.Name = "Dupe"
	err := client.CreateBot(context.Background(), draft)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "bot name already taken", apiErr.Message)
}

func TestCreateBotValidatesBeforeNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetToken("tok"))

	client := NewClient(srv.URL, store)
	draft := domain.NewBotDraft() // no name
	err := client.CreateBot(context.Background(), draft)

	require.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestListBotsNormalizesLegacyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"bot_id":"b1","bot_name":"Legacy","bot_type":"DCA","status":"Active",
			"parameters":"[{\"name\":\"Base Order Size\",\"type\":\"number\"}]","profit":"1.25"}]`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetToken("tok"))

	client := NewClient(srv.URL, store)
	bots, err := client.ListBots(context.Background())
	require.NoError(t, err)
	require.Len(t, bots, 1)

	assert.Equal(t, "b1", bots[0].ID)
	assert.Equal(t, "Legacy", bots[0].Name)
	assert.Equal(t, domain.BotStatusActive, bots[0].Status)
	assert.Len(t, bots[0].Params, 1)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] != "admin@x.y" || body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"fresh-jwt"}`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	client := NewClient(srv.URL, store)

	err := client.Login(context.Background(), "admin@x.y", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	_, ok, _ := store.Token()
	assert.False(t, ok, "failed login must not store a token")

	require.NoError(t, client.Login(context.Background(), "admin@x.y", "pw"))
	tok, ok, _ := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "fresh-jwt", tok)
}

func TestOverviewCaching(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"totalUsers":7,"revenue":"19.98","activeSessions":2}`))
	}))
	defer srv.Close()

	store := newTestStore(t)
	require.NoError(t, store.SetToken("tok"))
	client := NewClient(srv.URL, store)

	first, err := client.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, first.TotalUsers)

	_, err = client.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second call within the TTL must hit the cache")

	client.InvalidateOverview()
	_, err = client.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "invalidation must force a refetch")
}
