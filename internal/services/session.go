package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions.
	SessionKeyPrefix = "session:"
	// SessionCookie is the session cookie name.
	SessionCookie = "petdiary_session"
)

// TokenStore holds opaque session tokens. Redis in production, in-memory in
// tests.
type TokenStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns ("", false, nil) on a clean miss.
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
}

// RedisTokenStore backs sessions with Redis.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisTokenStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Sessions resolves the current actor from an HMAC-signed cookie holding an
// opaque token, and establishes/clears sessions around login and logout.
type Sessions struct {
	store  TokenStore
	secret []byte
	secure bool
}

func NewSessions(store TokenStore, secret string, secure bool) *Sessions {
	return &Sessions{store: store, secret: []byte(secret), secure: secure}
}

// Create issues a fresh token bound to userID and sets the session cookie.
func (s *Sessions) Create(ctx context.Context, w http.ResponseWriter, userID string) error {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := base64.URLEncoding.EncodeToString(raw)

	if err := s.store.Set(ctx, SessionKeyPrefix+token, userID, SessionDuration); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.sign(token),
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// UserID resolves the request's session cookie to a user id. Any miss — no
// cookie, bad signature, expired token — reports no actor, never an error.
func (s *Sessions) UserID(ctx context.Context, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	token, ok := s.verify(cookie.Value)
	if !ok {
		return "", false
	}
	userID, ok, err := s.store.Get(ctx, SessionKeyPrefix+token)
	if err != nil || !ok {
		return "", false
	}
	return userID, true
}

// Clear deletes the session server-side and expires the cookie. Idempotent:
// clearing a request with no session is not an error.
func (s *Sessions) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if token, ok := s.verify(cookie.Value); ok {
			_ = s.store.Del(ctx, SessionKeyPrefix+token)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return token + "." + hex.EncodeToString(mac.Sum(nil))
}

func (s *Sessions) verify(value string) (string, bool) {
	i := strings.LastIndex(value, ".")
	if i < 0 {
		return "", false
	}
	token, sig := value[:i], value[i+1:]

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return token, true
}
