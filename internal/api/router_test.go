// filepath: internal/api/router_test.go
package api

import (
	"blog/internal/api/handlers"
	"blog/internal/audit"
	"blog/internal/config"
	"blog/internal/housekeeping"
	"blog/internal/models"
	"blog/internal/repository"
	"blog/internal/services"
	"blog/internal/services/auth"
	"blog/internal/session"
	"blog/internal/storage"
	"blog/internal/web"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type e2eEnv struct {
	router http.Handler
	repo   *repository.Repository
	now    time.Time
}

func setupE2E(t *testing.T) *e2eEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	env := &e2eEnv{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return env.now }

	cfg := &config.Config{
		Database:           config.DatabaseConfig{Path: filepath.Join(dir, "e2e.db")},
		Storage:            config.StorageConfig{Backend: config.StorageBackendLocal, UploadDir: filepath.Join(dir, "uploads")},
		AdminPassword:      "password",
		MaxUploadSizeBytes: 1 << 20,
		RememberDuration:   30 * 24 * time.Hour,
	}

	repo, err := repository.NewRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureSchemaBootstrapped())
	repo.Clock = clock
	env.repo = repo

	uploads, err := storage.NewLocalBackend(cfg.Storage.UploadDir)
	require.NoError(t, err)

	userService := services.NewUserService(repo)
	require.NoError(t, userService.InitializeUsers(ctx, cfg))
	postService := services.NewPostService(repo, uploads, cfg.MaxUploadSizeBytes)
	store := session.NewDatabaseStore(repo)
	housekeepingService := services.NewHousekeepingService(housekeeping.Dependencies{
		Sessions: store,
		Posts:    repo,
		Uploads:  uploads,
		Clock:    clock,
	})
	infoService := services.NewInfoService("test", env.now, config.SessionBackendDatabase, config.StorageBackendLocal)
	auditor := audit.NewLoggerAuditor(false)

	manager := auth.NewSessionManager(userService, store, auth.NewCookieCodec("e2e-secret", clock), cfg.RememberDuration, false, auditor)
	manager.Clock = clock

	h := handlers.NewHandlers(infoService, userService, postService, housekeepingService, manager, auditor, web.MustRenderer(), cfg)
	env.router = SetupRouter(h, auth.NewMiddleware(manager, h.RenderError))
	return env
}

func (e *e2eEnv) do(t *testing.T, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *e2eEnv) get(t *testing.T, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil), cookie)
}

func (e *e2eEnv) post(t *testing.T, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req, cookie)
}

func (e *e2eEnv) login(t *testing.T, username, password string, remember bool) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	if remember {
		form.Set("remember_me", "on")
	}
	rr := e.post(t, "/login", form, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code, "login as %s failed", username)
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("login as %s set no session cookie", username)
	return nil
}

func (e *e2eEnv) apiPost(t *testing.T, id int64) models.Post {
	t.Helper()
	rr := e.get(t, fmt.Sprintf("/api/posts/%d", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &post))
	return post
}

func TestE2E_CreateRequiresLogin(t *testing.T) {
	env := setupE2E(t)

	rr := env.get(t, "/create", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	cookie := env.login(t, "user", "123", false)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Zero(t, cookie.MaxAge, "Without remember me the cookie lives for the browser session")

	rr = env.get(t, "/create", cookie)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `action="/create"`)
}

func TestE2E_InvalidLogin(t *testing.T) {
	env := setupE2E(t)

	rr := env.post(t, "/login", url.Values{"username": {"user"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")
	assert.Empty(t, rr.Result().Cookies())
}

func TestE2E_RememberMeExpires(t *testing.T) {
	env := setupE2E(t)

	remembered := env.login(t, "user", "123", true)
	assert.Equal(t, 30*24*60*60, remembered.MaxAge)
	browserOnly := env.login(t, "user", "123", false)

	env.now = env.now.Add(31 * 24 * time.Hour)

	rr := env.get(t, "/create", remembered)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	rr = env.get(t, "/create", browserOnly)
	assert.Equal(t, http.StatusOK, rr.Code, "Sessions without expiry are not expired by the server")
}

func TestE2E_Logout(t *testing.T) {
	env := setupE2E(t)
	cookie := env.login(t, "user", "123", false)

	rr := env.get(t, "/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = env.get(t, "/create", cookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code, "The old cookie no longer authenticates")
}

func TestE2E_AdminAccess(t *testing.T) {
	env := setupE2E(t)

	rr := env.get(t, "/admin", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	user := env.login(t, "user", "123", false)
	rr = env.get(t, "/admin", user)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.post(t, "/admin/create-user", url.Values{"username": {"mallory"}, "password": {"x"}}, user)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	admin := env.login(t, "admin", "password", false)
	rr = env.post(t, "/admin/create-user", url.Values{"username": {"alice"}, "password": {"secret"}}, admin)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = env.post(t, "/admin/delete-user/admin", nil, admin)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = env.get(t, "/admin", admin)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<td>alice</td>")
	assert.Contains(t, body, "<td>admin</td>", "The admin account survives a delete attempt")
	assert.NotContains(t, body, "mallory")
}

func TestE2E_PostLifecycle(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()

	admin := env.login(t, "admin", "password", false)
	env.post(t, "/admin/create-user", url.Values{"username": {"alice"}, "password": {"secret"}}, admin)
	alice := env.login(t, "alice", "secret", false)
	bob := env.login(t, "user", "123", false)

	// Missing content sends the author back to the form.
	rr := env.post(t, "/create", url.Values{"title": {"Hello"}}, alice)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/create", rr.Header().Get("Location"))

	rr = env.post(t, "/create", url.Values{"title": {"Hello"}, "content": {"World"}}, alice)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	posts, err := env.repo.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	id := posts[0].ID
	assert.Equal(t, "alice", posts[0].Author)
	assert.Equal(t, 0, posts[0].LikesCount)

	// Anonymous like and comment change nothing.
	rr = env.post(t, fmt.Sprintf("/like/%d", id), nil, nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	rr = env.post(t, fmt.Sprintf("/comment/%d", id), url.Values{"content": {"spam"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, 0, env.apiPost(t, id).LikesCount)
	assert.Empty(t, env.apiPost(t, id).Comments)

	rr = env.post(t, fmt.Sprintf("/like/%d", id), nil, bob)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, fmt.Sprintf("/post/%d", id), rr.Header().Get("Location"))
	assert.Equal(t, 1, env.apiPost(t, id).LikesCount)

	env.post(t, fmt.Sprintf("/comment/%d", id), url.Values{"content": {"nice!"}}, bob)
	post := env.apiPost(t, id)
	require.NotEmpty(t, post.Comments)
	assert.Equal(t, "nice!", post.Comments[0].Content)

	// Two page views.
	for i := 0; i < 2; i++ {
		rr = env.get(t, fmt.Sprintf("/post/%d", id), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "nice!")
	}
	assert.Equal(t, http.StatusNotFound, env.get(t, "/post/9999", nil).Code)

	rr = env.get(t, fmt.Sprintf("/analytics/%d", id), alice)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Views: 2")
	assert.Contains(t, body, "Likes: 1")
	assert.Contains(t, body, "<li>user</li>")

	assert.Equal(t, http.StatusForbidden, env.get(t, fmt.Sprintf("/analytics/%d", id), bob).Code)
	assert.Equal(t, http.StatusForbidden, env.get(t, "/analytics/9999", alice).Code)

	rr = env.get(t, "/analytics", alice)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), fmt.Sprintf(`href="/analytics/%d"`, id))

	// Unlike.
	env.post(t, fmt.Sprintf("/like/%d", id), nil, bob)
	assert.Equal(t, 0, env.apiPost(t, id).LikesCount)

	// Admin deletes the post.
	rr = env.post(t, fmt.Sprintf("/admin/delete-post/%d", id), nil, admin)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, http.StatusNotFound, env.get(t, fmt.Sprintf("/api/posts/%d", id), nil).Code)
}

func TestE2E_AdminCreateUserRejectsLongPassword(t *testing.T) {
	env := setupE2E(t)
	admin := env.login(t, "admin", "password", false)

	rr := env.post(t, "/admin/create-user", url.Values{"username": {"carol"}, "password": {strings.Repeat("p", 80)}}, admin)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))

	exists, err := env.repo.UserExists(context.Background(), "carol")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestE2E_EngagementOnMissingPost(t *testing.T) {
	env := setupE2E(t)
	cookie := env.login(t, "user", "123", false)

	rr := env.post(t, "/like/9999", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/post/9999", rr.Header().Get("Location"))

	rr = env.post(t, "/comment/9999", url.Values{"content": {"hello?"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	var likes, comments int
	require.NoError(t, env.repo.DB.QueryRow("SELECT COUNT(*) FROM likes WHERE post_id = 9999").Scan(&likes))
	require.NoError(t, env.repo.DB.QueryRow("SELECT COUNT(*) FROM comments WHERE post_id = 9999").Scan(&comments))
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestE2E_ImageUpload(t *testing.T) {
	env := setupE2E(t)
	cookie := env.login(t, "user", "123", false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Picture"))
	require.NoError(t, mw.WriteField("content", "Look at this"))
	part, err := mw.CreateFormFile("image", "holiday.PNG")
	require.NoError(t, err)
	_, err = part.Write(pngBytes(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := env.do(t, req, cookie)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	posts, err := env.repo.GetAllPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	imagePath := posts[0].ImagePath
	require.True(t, strings.HasPrefix(imagePath, services.UploadPathPrefix))
	assert.True(t, strings.HasSuffix(imagePath, ".PNG"), "The original extension is kept")

	rr = env.get(t, "/"+imagePath, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes(t), rr.Body.Bytes())

	assert.Equal(t, http.StatusNotFound, env.get(t, "/uploads/missing.png", nil).Code)
}

func TestE2E_PublicEndpoints(t *testing.T) {
	env := setupE2E(t)

	rr := env.get(t, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.get(t, "/api/info", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var info models.Info
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, "test", info.Version)
	assert.Equal(t, config.SessionBackendDatabase, info.SessionBackend)

	rr = env.get(t, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No posts yet.")

	rr = env.get(t, "/static/style.css", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.get(t, "/no/such/page", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page not found")
}

func TestE2E_Housekeeping(t *testing.T) {
	env := setupE2E(t)
	ctx := context.Background()
	past := env.now.Add(-time.Minute)
	require.NoError(t, env.repo.CreateSession(ctx, "stale", "user", &past))

	admin := env.login(t, "admin", "password", false)
	rr := env.post(t, "/admin/housekeeping", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Housekeeping report")
}
