// filepath: internal/services/auth/session_manager.go
package auth

import (
	"blog/internal/logging"
	"blog/internal/services"
	"blog/internal/session"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "session_id"

var _ Sessions = (*SessionManager)(nil)

// SessionManager owns the session store for the lifetime of the server and
// translates between cookies and sessions.
type SessionManager struct {
	Users    services.UserService
	Store    session.Store
	Codec    *CookieCodec
	Remember time.Duration // lifetime of "remember me" sessions
	Secure   bool          // set the cookie's Secure attribute
	Auditor  services.Auditor
	Clock    func() time.Time
	NewID    func() string
}

// NewSessionManager wires a manager with uuid session ids and the wall clock.
func NewSessionManager(users services.UserService, store session.Store, codec *CookieCodec, remember time.Duration, secure bool, auditor services.Auditor) *SessionManager {
	return &SessionManager{
		Users:    users,
		Store:    store,
		Codec:    codec,
		Remember: remember,
		Secure:   secure,
		Auditor:  auditor,
		Clock:    time.Now,
		NewID:    uuid.NewString,
	}
}

// Login verifies the credentials and issues a new session cookie.
// It returns false for bad credentials; errors mean the store failed.
func (m *SessionManager) Login(ctx context.Context, w http.ResponseWriter, username, password string, remember bool) (bool, error) {
	ok, err := m.Users.VerifyCredentials(ctx, username, password)
	if err != nil {
		return false, err
	}
	if !ok {
		logging.Log.Debugf("SessionManager: rejected login for '%s'", username)
		return false, nil
	}

	sessionID := m.NewID()
	var expiresAt *time.Time
	if remember {
		t := m.Clock().Add(m.Remember)
		expiresAt = &t
	}
	if err := m.Store.Create(ctx, sessionID, username, expiresAt); err != nil {
		return false, fmt.Errorf("failed to store session: %w", err)
	}

	value, err := m.Codec.Encode(sessionID, expiresAt)
	if err != nil {
		return false, err
	}
	cookie := m.baseCookie(value)
	if remember {
		cookie.MaxAge = int(m.Remember.Seconds())
		cookie.Expires = *expiresAt
	}
	http.SetCookie(w, cookie)

	m.audit(ctx, "auth.login", username, map[string]interface{}{"remember_me": remember})
	return true, nil
}

// Logout deletes the session of the request (if any) and always clears the cookie.
func (m *SessionManager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer func() {
		cookie := m.baseCookie("")
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		http.SetCookie(w, cookie)
	}()

	sessionID, ok := m.sessionID(r)
	if !ok {
		return nil
	}
	username, _, err := m.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := m.Store.Delete(ctx, sessionID); err != nil {
		return err
	}
	if username != "" {
		m.audit(ctx, "auth.logout", username, nil)
	}
	return nil
}

// CurrentUser resolves the request's session cookie. Requests that carry a
// cookie also trigger a sweep of expired sessions, even when the cookie itself
// no longer verifies.
func (m *SessionManager) CurrentUser(ctx context.Context, r *http.Request) (string, bool, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false, nil
	}
	defer m.sweepExpired(ctx)

	sessionID, err := m.Codec.Decode(c.Value)
	if err != nil {
		logging.Log.Debugf("SessionManager: ignoring cookie: %v", err)
		return "", false, nil
	}
	return m.Store.Get(ctx, sessionID)
}

func (m *SessionManager) sweepExpired(ctx context.Context) {
	if removed, err := m.Store.CleanupExpired(ctx); err != nil {
		logging.Log.Warnf("SessionManager: expired session sweep failed: %v", err)
	} else if removed > 0 {
		logging.Log.Debugf("SessionManager: swept %d expired sessions", removed)
	}
}

// Close releases the session store.
func (m *SessionManager) Close() error {
	return m.Store.Close()
}

// sessionID extracts and verifies the session id from the request cookie.
func (m *SessionManager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, err := m.Codec.Decode(c.Value)
	if err != nil {
		logging.Log.Debugf("SessionManager: ignoring cookie: %v", err)
		return "", false
	}
	return id, true
}

func (m *SessionManager) baseCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *SessionManager) audit(ctx context.Context, action, actor string, details map[string]interface{}) {
	if m.Auditor != nil {
		m.Auditor.Log(ctx, action, actor, "Session", details)
	}
}
