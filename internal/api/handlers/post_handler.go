// filepath: internal/api/handlers/post_handler.go
package handlers

import (
	"blog/internal/logging"
	"blog/internal/models"
	"blog/internal/services"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// multipartOverhead is allowed on top of the image limit for the other form fields.
const multipartOverhead = 1 << 20

type indexView struct {
	Posts []models.Post
}

type postView struct {
	Post *models.Post
}

// Index lists all posts, newest first.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Post.ListPosts(r.Context())
	if err != nil {
		h.internalError(w, r, "Index: ListPosts failed", err)
		return
	}
	h.render(w, r, http.StatusOK, "index.html", "", indexView{Posts: posts})
}

// ViewPost shows one post with its comments and records a view.
func (h *Handlers) ViewPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.RenderError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.Post.ViewPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.RenderError(w, r, http.StatusNotFound, "Post not found")
			return
		}
		h.internalError(w, r, fmt.Sprintf("ViewPost: post %d", id), err)
		return
	}
	h.render(w, r, http.StatusOK, "post.html", post.Title, postView{Post: post})
}

// CreatePostForm renders the new post form.
func (h *Handlers) CreatePostForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "create.html", "New post", nil)
}

// CreatePost creates a post from the multipart form fields title, content and the optional image.
// Missing title or content sends the user back to the form.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	username := getUserFromContext(r)

	maxUpload := h.Cfg.MaxUploadSizeBytes
	if maxUpload <= 0 {
		maxUpload = 8 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)

	if err := r.ParseMultipartForm(maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RenderError(w, r, http.StatusRequestEntityTooLarge, "The uploaded image is too large.")
			return
		}
		logging.Log.Warnf("CreatePost: failed to parse form: %v", err)
		h.RenderError(w, r, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	if title == "" || content == "" {
		redirect(w, r, "/create")
		return
	}

	var image *services.ImageUpload
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		if header.Filename != "" && header.Size > 0 {
			image = &services.ImageUpload{File: file, Filename: header.Filename, Size: header.Size}
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no image attached
	default:
		logging.Log.Warnf("CreatePost: failed to read image part: %v", err)
		h.RenderError(w, r, http.StatusBadRequest, "Invalid image upload.")
		return
	}

	id, err := h.Post.CreatePost(r.Context(), username, title, content, image)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			redirect(w, r, "/create")
		case errors.Is(err, services.ErrUnsupported):
			h.RenderError(w, r, http.StatusUnsupportedMediaType, "The uploaded file is not a supported image (JPEG, PNG, GIF or WebP).")
		case errors.Is(err, services.ErrTooLarge):
			h.RenderError(w, r, http.StatusRequestEntityTooLarge, "The uploaded image is too large.")
		default:
			h.internalError(w, r, "CreatePost: CreatePost failed", err)
		}
		return
	}

	details := map[string]interface{}{"title": title}
	if image != nil {
		details["image"] = image.Filename
		details["size"] = image.Size
	}
	h.Auditor.Log(r.Context(), "post.create", username, fmt.Sprintf("Post:%d", id), details)

	redirect(w, r, "/")
}

// ToggleLike likes or unlikes a post for the current user. Anonymous requests
// and missing posts change nothing.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.RenderError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	if username := getUserFromContext(r); username != "" {
		if _, err := h.Post.ToggleLike(r.Context(), id, username); err != nil && !errors.Is(err, services.ErrNotFound) {
			h.internalError(w, r, fmt.Sprintf("ToggleLike: post %d", id), err)
			return
		}
	}
	redirect(w, r, postURL(id))
}

// AddComment adds the form field content as a comment. Anonymous requests,
// blank comments and missing posts change nothing.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		h.RenderError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	username := getUserFromContext(r)
	content := strings.TrimSpace(r.PostFormValue("content"))
	if username != "" && content != "" {
		if err := h.Post.AddComment(r.Context(), id, username, content); err != nil && !errors.Is(err, services.ErrValidation) && !errors.Is(err, services.ErrNotFound) {
			h.internalError(w, r, fmt.Sprintf("AddComment: post %d", id), err)
			return
		}
	}
	redirect(w, r, postURL(id))
}

// ServeUpload streams an uploaded image.
func (h *Handlers) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	rc, info, err := h.Post.OpenUpload(r.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Log.Errorf("ServeUpload: failed to open '%s': %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if seeker, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, info.ModTime, seeker)
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		logging.Log.Debugf("ServeUpload: copy of '%s' interrupted: %v", name, err)
	}
}
