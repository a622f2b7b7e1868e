package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is the authenticated identity attached to a request.
type Session struct {
	ID    string `json:"-"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionManager orchestrates cookie based sessions backed by Redis.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Load resolves the request's session cookie. A missing or expired
// session yields (nil, nil); the caller decides whether that is an error.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	payload, err := sm.client.Get(ctx, sm.redisKey(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth: load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("auth: decode session: %w", err)
	}
	sess.ID = cookie.Value
	return &sess, nil
}

// Issue creates a session for the credential and sets the cookie.
func (sm *SessionManager) Issue(ctx context.Context, w http.ResponseWriter, cred Credential) (*Session, error) {
	sess := &Session{
		ID:    uuid.NewString(),
		Email: cred.Email,
		Role:  cred.Role,
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("auth: encode session: %w", err)
	}
	if err := sm.client.Set(ctx, sm.redisKey(sess.ID), payload, sm.ttl).Err(); err != nil {
		return nil, fmt.Errorf("auth: store session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(sm.ttl.Seconds()),
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// Destroy removes the session and expires the cookie.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(sm.cookieName)
	if err == nil {
		if delErr := sm.client.Del(ctx, sm.redisKey(cookie.Value)).Err(); delErr != nil {
			return fmt.Errorf("auth: delete session: %w", delErr)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (sm *SessionManager) redisKey(id string) string {
	return "sudepo:session:" + id
}
