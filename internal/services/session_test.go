package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions(NewMemoryTokenStore(), "test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Create(context.Background(), rec, "user-123"))
	cookie := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(cookie)

	userID, ok := sessions.UserID(context.Background(), req)
	require.True(t, ok)
	assert.Equal(t, "user-123", userID)
}

func TestSessionTamperedSignatureRejected(t *testing.T) {
	sessions := NewSessions(NewMemoryTokenStore(), "test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Create(context.Background(), rec, "user-123"))
	cookie := sessionCookie(t, rec)
	cookie.Value = cookie.Value[:len(cookie.Value)-1] + "0"

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(cookie)

	_, ok := sessions.UserID(context.Background(), req)
	assert.False(t, ok)
}

func TestSessionWrongSecretRejected(t *testing.T) {
	store := NewMemoryTokenStore()
	issuer := NewSessions(store, "secret-a", false)
	checker := NewSessions(store, "secret-b", false)

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.Create(context.Background(), rec, "user-123"))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(sessionCookie(t, rec))

	_, ok := checker.UserID(context.Background(), req)
	assert.False(t, ok)
}

func TestClearIsIdempotent(t *testing.T) {
	sessions := NewSessions(NewMemoryTokenStore(), "test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Create(context.Background(), rec, "user-123"))
	cookie := sessionCookie(t, rec)

	// Clear with a live session, then again on a request with none.
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	sessions.Clear(context.Background(), httptest.NewRecorder(), req)

	bare := httptest.NewRequest(http.MethodGet, "/logout", nil)
	sessions.Clear(context.Background(), httptest.NewRecorder(), bare)

	check := httptest.NewRequest(http.MethodGet, "/profile", nil)
	check.AddCookie(cookie)
	_, ok := sessions.UserID(context.Background(), check)
	assert.False(t, ok)
}

func TestFlashPopReturnsAndClears(t *testing.T) {
	rec := httptest.NewRecorder()
	Flash(rec, "Pet not found.")

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	popRec := httptest.NewRecorder()
	flashes := PopFlash(popRec, req)
	require.Equal(t, []string{"Pet not found."}, flashes)

	// The pop response must expire the cookie.
	var cleared bool
	for _, c := range popRec.Result().Cookies() {
		if c.Name == FlashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
