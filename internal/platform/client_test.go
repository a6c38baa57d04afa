package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathcode/tutor-admin-api/internal/models"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, tokens, nil), server
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), &staticTokens{token: "tok-abc"})

	_, err := client.ListUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestMissingTokenFailsBeforeNetwork(t *testing.T) {
	hits := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}), &staticTokens{err: appErrors.ErrNoAuthToken})

	_, err := client.ListUsers(context.Background(), "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoAuthToken))
	assert.Zero(t, hits, "no request should reach the server without a token")
}

func TestErrorMessageFromBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"student already has an active package"}`))
	}), &staticTokens{token: "tok"})

	_, err := client.ListPackages(context.Background())
	require.Error(t, err)

	e := appErrors.FromError(err)
	assert.Equal(t, http.StatusConflict, e.Status)
	assert.Equal(t, "student already has an active package", e.Message)
}

func TestErrorFallbackOnNonJSONBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>gateway error</html>`))
	}), &staticTokens{token: "tok"})

	_, err := client.ListSessions(context.Background())
	require.Error(t, err)

	e := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRemote.Message, e.Message)
}

func TestListDecodesBareArrayAndEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("role") == models.RoleParent {
			w.Write([]byte(`{"users":[{"_id":"p1","roles":["parent"]}]}`))
			return
		}
		w.Write([]byte(`[{"_id":"u1"},{"id":"u2"}]`))
	}), &staticTokens{token: "tok"})

	users, err := client.ListUsers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "u2", users[1].ID)

	parents, err := client.ListUsers(context.Background(), models.RoleParent)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, "p1", parents[0].ID)
}

func TestAddCreditsSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		gotPath = r.URL.Path
		w.Write([]byte(`{"_id":"p1","credits":15}`))
	}), &staticTokens{token: "tok"})

	user, err := client.AddCredits(context.Background(), "p1", 5, "key-123")
	require.NoError(t, err)
	assert.Equal(t, "key-123", gotKey)
	assert.Equal(t, "/api/users/p1/credits", gotPath)
	assert.Equal(t, float64(15), user.Credits)
}

func TestLoginSkipsAuth(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"token":"fresh","user":{"_id":"a1","email":"admin@example.com","roles":["admin"]}}`))
	}), &staticTokens{err: appErrors.ErrNoAuthToken})

	creds, err := client.Login(context.Background(), models.LoginCredentials{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", creds.Token)
	assert.Equal(t, "a1", creds.User.ID)
}

func TestTransformAppliedToResponses(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"s1","duration":90}`))
	}), &staticTokens{token: "tok"})

	session, err := client.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, session.CreditsUsed)
	assert.Equal(t, models.SessionStatusScheduled, session.Status)
}
