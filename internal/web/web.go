// internal/web/web.go
// Package web renders the server-side HTML pages and serves the embedded static assets.
package web

import (
	"blog/internal/logging"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html static/*
var content embed.FS

// Page is the data every template receives. Data carries the page-specific view.
type Page struct {
	Title   string
	User    string
	IsAdmin bool
	Data    any
}

// pages lists the templates that can be rendered; each one is combined with layout.html.
var pages = []string{
	"index.html",
	"post.html",
	"admin.html",
	"login.html",
	"create.html",
	"analytics.html",
	"post_analytics.html",
	"error.html",
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
	"uploadURL": func(imagePath string) string {
		return "/" + strings.TrimPrefix(imagePath, "/")
	},
}

// Renderer executes the embedded page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses all page templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(content, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// MustRenderer is NewRenderer for callers that cannot continue without templates.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render writes the named page with the given status code. The page is rendered
// into a buffer first so a template error never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.templates[name]
	if !ok {
		logging.Log.Errorf("Render: unknown template %s", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		logging.Log.Errorf("Render: executing %s failed: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Log.Debugf("Render: writing %s failed: %v", name, err)
	}
}

// staticHandler serves files from the embedded static directory.
type staticHandler struct {
	contentFS fs.FS
}

// ServeHTTP serves one static asset.
func (h staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filePath := path.Clean(strings.TrimPrefix(r.URL.Path, "/static/"))
	if filePath == "" || filePath == "." || strings.HasPrefix(filePath, "..") {
		http.NotFound(w, r)
		return
	}

	file, err := h.contentFS.Open(filePath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil || fileInfo.IsDir() {
		http.NotFound(w, r)
		return
	}

	// embed.FS files implement io.ReadSeeker, but fs.File does not guarantee it.
	seeker, ok := file.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(file)
		if err != nil {
			logging.Log.Errorf("staticHandler: error reading %s: %v", filePath, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		seeker = bytes.NewReader(data)
	}

	http.ServeContent(w, r, filePath, fileInfo.ModTime(), seeker)
}

// AddRoutes mounts the static asset handler on the router.
func AddRoutes(router *mux.Router) {
	subFS, err := fs.Sub(content, "static")
	if err != nil {
		logging.Log.Fatalf("Failed to create sub FS for static assets: %v", err)
	}
	router.PathPrefix("/static/").Handler(staticHandler{contentFS: subFS}).Methods("GET")
}
