// filepath: internal/api/handlers/admin_handler.go
package handlers

import (
	"blog/internal/logging"
	"blog/internal/models"
	"blog/internal/services"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type adminView struct {
	Posts  []models.Post
	Users  []string
	Report *models.HousekeepingReport
}

// AdminPanel lists all posts and users.
func (h *Handlers) AdminPanel(w http.ResponseWriter, r *http.Request) {
	h.renderAdmin(w, r, http.StatusOK, nil)
}

func (h *Handlers) renderAdmin(w http.ResponseWriter, r *http.Request, status int, report *models.HousekeepingReport) {
	posts, err := h.Post.ListPosts(r.Context())
	if err != nil {
		h.internalError(w, r, "AdminPanel: ListPosts failed", err)
		return
	}
	users, err := h.User.GetUsers(r.Context())
	if err != nil {
		h.internalError(w, r, "AdminPanel: GetUsers failed", err)
		return
	}
	h.render(w, r, status, "admin.html", "Admin", adminView{Posts: posts, Users: users, Report: report})
}

// AdminDeletePost deletes a post. Its likes, comments and views are kept.
func (h *Handlers) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		redirect(w, r, "/admin")
		return
	}

	deleted, err := h.Post.DeletePost(r.Context(), id)
	if err != nil {
		h.internalError(w, r, fmt.Sprintf("AdminDeletePost: post %d", id), err)
		return
	}
	if deleted {
		h.Auditor.Log(r.Context(), "post.delete", getUserFromContext(r), fmt.Sprintf("Post:%d", id), nil)
	}
	redirect(w, r, "/admin")
}

// AdminCreateUser creates a user from the form fields username and password.
// An existing username or a missing field changes nothing.
func (h *Handlers) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		redirect(w, r, "/admin")
		return
	}

	logging.Log.Debugf("AdminCreateUser: Handler: Calling UserService for '%s'", username)
	created, err := h.User.CreateUser(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			logging.Log.Infof("AdminCreateUser: rejected '%s': %v", username, err)
			redirect(w, r, "/admin")
			return
		}
		h.internalError(w, r, "AdminCreateUser: CreateUser failed", err)
		return
	}
	if created {
		h.Auditor.Log(r.Context(), "user.create", getUserFromContext(r), "User:"+username, nil)
	} else {
		logging.Log.Infof("AdminCreateUser: username '%s' already exists", username)
	}
	redirect(w, r, "/admin")
}

// AdminDeleteUser deletes a user. The admin account is never deleted.
func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	deleted, err := h.User.DeleteUser(r.Context(), username)
	if err != nil {
		h.internalError(w, r, "AdminDeleteUser: DeleteUser failed", err)
		return
	}
	if deleted {
		h.Auditor.Log(r.Context(), "user.delete", getUserFromContext(r), "User:"+username, nil)
	}
	redirect(w, r, "/admin")
}
