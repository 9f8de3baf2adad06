package graph_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/graphkit/pkg/graph"
)

type tokenEndpoint struct {
	*httptest.Server
	mu   sync.Mutex
	form url.Values
}

func newTokenEndpoint(t *testing.T, status int, response string) *tokenEndpoint {
	t.Helper()
	te := &tokenEndpoint{}
	te.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())

		te.mu.Lock()
		te.form = r.PostForm
		te.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(te.Close)
	return te
}

func (te *tokenEndpoint) lastForm() url.Values {
	te.mu.Lock()
	defer te.mu.Unlock()
	return te.form
}

func TestOAuth_AuthCodeURL(t *testing.T) {
	t.Parallel()

	o := graph.NewOAuth(graph.OAuthConfig{
		AppID:       "app-id",
		AppSecret:   "app-secret",
		RedirectURL: "https://example.com/callback",
		Scopes:      []string{"email", "publish_stream"},
	})

	raw := o.AuthCodeURL("state-1")
	assert.True(t, strings.HasPrefix(raw, "https://www.facebook.com/"), raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "app-id", q.Get("client_id"))
	assert.Equal(t, "https://example.com/callback", q.Get("redirect_uri"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "email publish_stream", q.Get("scope"))
	assert.Empty(t, q.Get("client_secret"))
}

func TestOAuth_UserClient(t *testing.T) {
	t.Parallel()

	tokens := newTokenEndpoint(t, http.StatusOK, `{"access_token":"user-token","token_type":"bearer","expires_in":5183999}`)
	api := newFakeGraph(t, `{"id":"5"}`)

	o := graph.NewOAuth(graph.OAuthConfig{
		AppID:       "app-id",
		AppSecret:   "app-secret",
		RedirectURL: "https://example.com/callback",
		TokenURL:    tokens.URL,
	}, graph.WithBaseURL(api.URL))

	client, err := o.UserClient(context.Background(), "auth-code")
	require.NoError(t, err)

	form := tokens.lastForm()
	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "auth-code", form.Get("code"))
	assert.Equal(t, "app-id", form.Get("client_id"))
	assert.Equal(t, "app-secret", form.Get("client_secret"))
	assert.Equal(t, "https://example.com/callback", form.Get("redirect_uri"))

	_, err = client.GetObject(context.Background(), "me", nil)
	require.NoError(t, err)
	assert.Equal(t, "user-token", api.last(t).Query.Get("access_token"))

	_, err = client.PutLike(context.Background(), "5_1")
	require.NoError(t, err, "a token source counts as a credential for writes")
}

func TestOAuth_AppClient(t *testing.T) {
	t.Parallel()

	tokens := newTokenEndpoint(t, http.StatusOK, `{"access_token":"app-id|app-token","token_type":"bearer"}`)
	api := newFakeGraph(t, `{"data":[]}`)

	o := graph.NewOAuth(graph.OAuthConfig{
		AppID:     "app-id",
		AppSecret: "app-secret",
		TokenURL:  tokens.URL,
	}, graph.WithBaseURL(api.URL))

	client := o.AppClient(context.Background())
	_, err := client.GetConnections(context.Background(), "app-id", "subscriptions", nil)
	require.NoError(t, err)

	form := tokens.lastForm()
	assert.Equal(t, "client_credentials", form.Get("grant_type"))
	assert.Equal(t, "app-id", form.Get("client_id"))
	assert.Equal(t, "app-secret", form.Get("client_secret"))

	assert.Equal(t, "/app-id/subscriptions", api.last(t).Path)
	assert.Equal(t, "app-id|app-token", api.last(t).Query.Get("access_token"))
}

func TestOAuth_ExchangeErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty code", func(t *testing.T) {
		t.Parallel()
		o := graph.NewOAuth(graph.OAuthConfig{AppID: "a", AppSecret: "s"})
		_, err := o.Exchange(context.Background(), "  ")
		assert.ErrorIs(t, err, graph.ErrInvalidParams)
	})

	t.Run("rejected by endpoint", func(t *testing.T) {
		t.Parallel()
		tokens := newTokenEndpoint(t, http.StatusBadRequest,
			`{"error":{"message":"Invalid verification code format.","type":"OAuthException","code":100}}`)
		o := graph.NewOAuth(graph.OAuthConfig{AppID: "a", AppSecret: "s", TokenURL: tokens.URL})

		_, err := o.Exchange(context.Background(), "bad-code")
		require.Error(t, err)
		assert.Equal(t, graph.KindAPI, graph.Kind(err))
	})

	t.Run("app token failure surfaces on request", func(t *testing.T) {
		t.Parallel()
		tokens := newTokenEndpoint(t, http.StatusUnauthorized, `{"error":"invalid_client"}`)
		api := newFakeGraph(t, `{}`)
		o := graph.NewOAuth(graph.OAuthConfig{AppID: "a", AppSecret: "s", TokenURL: tokens.URL}, graph.WithBaseURL(api.URL))

		_, err := o.AppClient(context.Background()).GetObject(context.Background(), "me", nil)
		require.Error(t, err)
		assert.Equal(t, graph.KindAPI, graph.Kind(err))
		assert.Equal(t, int32(0), api.calls.Load())
	})
}
