package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/rentwheels-server/internal/auth"
)

func TestRequireAuth_MissingCookieIs401(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/my-cars/user@example.com", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
	assert.Nil(t, envelope.Data, "no data leaks on auth failure")
}

func TestRequireAuth_GarbageTokenIs403(t *testing.T) {
	env := newTestEnv(t)

	cookie := &http.Cookie{Name: auth.CookieName, Value: "v4.local.garbage"}
	w := env.do(t, http.MethodGet, "/my-cars/user@example.com", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuth_ExpiredTokenIs403(t *testing.T) {
	env := newTestEnv(t)

	shortLived, err := auth.NewTokenService(testKeyHex, 30*time.Millisecond)
	require.NoError(t, err)
	token, err := shortLived.Issue(map[string]any{"email": "user@example.com"})
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	cookie := &http.Cookie{Name: auth.CookieName, Value: token}
	w := env.do(t, http.MethodGet, "/my-cars/user@example.com", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnership_MismatchedEmailIs403(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.sessionCookie(t, "alice@example.com")

	w := env.do(t, http.MethodGet, "/my-cars/bob@example.com", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
	assert.Nil(t, envelope.Data)
}

func TestOwnership_EmailComparisonIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.sessionCookie(t, "Alice@Example.com")

	w := env.do(t, http.MethodGet, "/my-cars/alice@example.com", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_TokenEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{"email": "user@example.com"}

	var saw429 bool
	for i := 0; i < 20; i++ {
		w := env.do(t, http.MethodPost, "/jwt", body)
		if w.Code == http.StatusTooManyRequests {
			saw429 = true
			break
		}
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.True(t, saw429, "hammering /jwt from one IP must trip the limiter")
}
