// filepath: internal/api/handlers/auth_handler_test.go
package handlers

import (
	"blog/internal/shared"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLogin(t *testing.T) {
	t.Run("Form", func(t *testing.T) {
		f := newHandlerFixture(t)
		rr := httptest.NewRecorder()
		f.h.LoginForm(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `name="remember_me"`)
	})

	t.Run("Success with remember me", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.sessions.On("Login", mock.Anything, mock.Anything, "user", "123", true).Return(true, nil).Once()

		req := formRequest(http.MethodPost, "/login", url.Values{"username": {"user"}, "password": {"123"}, "remember_me": {"on"}})
		rr := httptest.NewRecorder()
		f.h.Login(rr, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
		f.sessions.AssertExpectations(t)
	})

	t.Run("Invalid credentials re-render the form", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.sessions.On("Login", mock.Anything, mock.Anything, "user", "wrong", false).Return(false, nil).Once()

		req := formRequest(http.MethodPost, "/login", url.Values{"username": {"user"}, "password": {"wrong"}})
		rr := httptest.NewRecorder()
		f.h.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
	})

	t.Run("Missing fields re-render the form", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.sessions.On("Login", mock.Anything, mock.Anything, "", "", false).Return(false, nil).Once()

		req := formRequest(http.MethodPost, "/login", url.Values{})
		rr := httptest.NewRecorder()
		f.h.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
	})

	t.Run("Store failure", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.sessions.On("Login", mock.Anything, mock.Anything, "user", "123", false).Return(false, shared.ErrStorage).Once()

		req := formRequest(http.MethodPost, "/login", url.Values{"username": {"user"}, "password": {"123"}})
		rr := httptest.NewRecorder()
		f.h.Login(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestLogout(t *testing.T) {
	f := newHandlerFixture(t)
	f.sessions.On("Logout", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	rr := httptest.NewRecorder()
	f.h.Logout(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	f.sessions.AssertExpectations(t)
}
