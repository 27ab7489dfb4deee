package auth_test

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/rentwheels-server/internal/auth"
)

const testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func newTestService(t *testing.T, ttl time.Duration) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(testKeyHex, ttl)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := auth.NewTokenService("too-short", time.Hour)
	require.Error(t, err)

	notHex := "zz" + testKeyHex[2:]
	_, err = auth.NewTokenService(notHex, time.Hour)
	require.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	identity := map[string]any{
		"email": "user@example.com",
		"name":  "User",
		"role":  "renter",
	}

	token, err := svc.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	// The identity payload survives exactly as presented.
	assert.Equal(t, "user@example.com", claims.Identity["email"])
	assert.Equal(t, "User", claims.Identity["name"])
	assert.Equal(t, "renter", claims.Identity["role"])
	assert.Equal(t, "user@example.com", claims.Email())
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenService_Issue_RequiresEmail(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.Issue(map[string]any{"name": "NoEmail"})
	require.Error(t, err)

	_, err = svc.Issue(map[string]any{"email": ""})
	require.Error(t, err)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := newTestService(t, 50*time.Millisecond)

	token, err := svc.Issue(map[string]any{"email": "user@example.com"})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	_, err = svc.Verify(token)
	require.Error(t, err)
}

func TestTokenService_Verify_WrongKey(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Issue(map[string]any{"email": "user@example.com"})
	require.NoError(t, err)

	otherKey := hex.EncodeToString(make([]byte, 32))
	other, err := auth.NewTokenService(otherKey, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.Verify("v4.local.not-a-real-token")
	require.Error(t, err)
}

func TestIdentityClaims_Email(t *testing.T) {
	claims := &auth.IdentityClaims{Identity: map[string]any{"email": "  Mixed@Case.COM "}}
	assert.Equal(t, "mixed@case.com", claims.Email())

	claims = &auth.IdentityClaims{Identity: map[string]any{"email": 42}}
	assert.Empty(t, claims.Email())

	claims = &auth.IdentityClaims{Identity: map[string]any{}}
	assert.Empty(t, claims.Email())
}

func TestSessionCookie_DevAndProd(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.SetSessionCookie(rec, "tok", time.Hour, false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, auth.CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, 3600, c.MaxAge)

	rec = httptest.NewRecorder()
	auth.SetSessionCookie(rec, "tok", time.Hour, true)
	c = rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.ClearSessionCookie(rec, false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLoadOrGenerateKey_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	first, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Len(t, first, 64)

	// A second load returns the same persisted key.
	second, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	svc, err := auth.NewTokenService(first, time.Hour)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
