// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userEmailKey = "user_email"
)

// SessionUser is what we cache in the session and inject into
// r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager owns the cookie store and the middleware that loads
// the signed-in user into request context.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. The key
// must be non-empty; secure controls the Secure cookie attribute and
// should be true in production.
func NewSessionManager(key, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if key == "" {
		return nil, errors.New("session key must not be empty")
	}
	if name == "" {
		name = "vitconnect-session"
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   60 * 60 * 24 * 30, // 30 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// CurrentUser returns the signed-in user from context and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// SignIn writes the user into the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userEmailKey] = u.Email
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are logged in.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			// Proceed unauthenticated either way, but a decode failure
			// is just a stale or tampered cookie while anything else
			// points at the store itself.
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				m.log.Debug("session cookie invalid", zap.Error(err))
			} else {
				m.log.Warn("session store error", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userNameKey),
				Email: getString(sess, userEmailKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser). API callers get a JSON 401; no redirect dance.
//
// The production gate for mutations is the interaction service, which
// rejects zero actor IDs before touching any store; handlers resolve
// the actor from the session themselves. This middleware is for
// mounting whole subtrees that should never serve anonymous traffic.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "sign in required"})
	})
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithUser returns a request whose context carries u. Exposed for
// handler tests that bypass the session middleware.
func WithUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func getString(s *sessions.Session, key string) string {
	v, _ := s.Values[key].(string)
	return v
}
