// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"blog/internal/config"
	"blog/internal/models"
	"blog/internal/services/auth"
	"blog/internal/services/mocks"
	"blog/internal/web"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

type handlerFixture struct {
	h        *Handlers
	info     *mocks.MockInfoService
	users    *mocks.MockUserService
	posts    *mocks.MockPostService
	hk       *mocks.MockHousekeepingService
	sessions *mocks.MockSessions
	auditor  *mocks.MockAuditor
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		info:     new(mocks.MockInfoService),
		users:    new(mocks.MockUserService),
		posts:    new(mocks.MockPostService),
		hk:       new(mocks.MockHousekeepingService),
		sessions: new(mocks.MockSessions),
		auditor:  new(mocks.MockAuditor),
	}
	f.info.On("GetInfo").Return(models.Info{
		ServiceName: "Blog",
		Version:     "test",
		UptimeSince: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})

	cfg := &config.Config{MaxUploadSizeBytes: 1 << 20}
	f.h = NewHandlers(f.info, f.users, f.posts, f.hk, f.sessions, f.auditor, web.MustRenderer(), cfg)
	return f
}

// asUser attaches an authenticated username the way the session middleware does.
func asUser(req *http.Request, username string) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), username))
}

func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func formRequest(method, target string, form url.Values) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req
}
