// filepath: internal/api/router.go
package api

import (
	"blog/internal/api/handlers"
	"blog/internal/services/auth"
	"blog/internal/web"
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter configures the main router and its sub-routers.
// It sets up the HTML pages, the read-only JSON API and the static assets.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(withAccessLog)

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	r.HandleFunc("/uploads/{name}", h.ServeUpload).Methods("GET")
	web.AddRoutes(r)
	addAPIRoutes(r.PathPrefix("/api").Subrouter(), h)

	// Every page resolves the session cookie first.
	pages := r.PathPrefix("/").Subrouter()
	pages.Use(am.WithSession)
	addPublicPageRoutes(pages, h)
	addUserRoutes(pages, h, am)
	addAdminRoutes(pages, h, am)

	r.NotFoundHandler = am.WithSession(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.RenderError(w, req, http.StatusNotFound, "Page not found")
	}))

	return r
}

// addAPIRoutes configures the public JSON endpoints.
func addAPIRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/info", h.GetInfo).Methods("GET")
	r.HandleFunc("/posts", h.GetPostsAPI).Methods("GET")
	r.HandleFunc("/posts/{id}", h.GetPostAPI).Methods("GET")
}

// addPublicPageRoutes configures pages anyone may open. Like and comment
// silently ignore anonymous requests.
func addPublicPageRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/post/{id}", h.ViewPost).Methods("GET")
	r.HandleFunc("/login", h.LoginForm).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("GET")
	r.HandleFunc("/like/{id}", h.ToggleLike).Methods("POST")
	r.HandleFunc("/comment/{id}", h.AddComment).Methods("POST")
}

// addUserRoutes configures pages that require a login.
func addUserRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	userRouter := r.PathPrefix("/").Subrouter()
	userRouter.Use(am.RequireAuth)
	userRouter.HandleFunc("/create", h.CreatePostForm).Methods("GET")
	userRouter.HandleFunc("/create", h.CreatePost).Methods("POST")
	userRouter.HandleFunc("/analytics", h.UserAnalytics).Methods("GET")
	userRouter.HandleFunc("/analytics/{id}", h.PostAnalytics).Methods("GET")
}

// addAdminRoutes configures the admin panel and its actions.
func addAdminRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.Use(am.RequireAdmin)
	adminRouter.HandleFunc("", h.AdminPanel).Methods("GET")
	adminRouter.HandleFunc("/delete-post/{id}", h.AdminDeletePost).Methods("POST")
	adminRouter.HandleFunc("/create-user", h.AdminCreateUser).Methods("POST")
	adminRouter.HandleFunc("/delete-user/{username}", h.AdminDeleteUser).Methods("POST")
	adminRouter.HandleFunc("/housekeeping", h.TriggerHousekeeping).Methods("POST")
}
