// filepath: internal/api/handlers/auth_handler.go
package handlers

import (
	"blog/internal/logging"
	"net/http"
)

type loginView struct {
	Error string
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", "Log in", loginView{})
}

// Login verifies the form credentials and starts a session. A checked
// remember_me box makes the session outlive the browser.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember_me") != ""

	ok, err := h.Sessions.Login(r.Context(), w, username, password, remember)
	if err != nil {
		h.internalError(w, r, "Login: session login failed", err)
		return
	}
	if !ok {
		logging.Log.Infof("Login: failed login attempt for '%s'", username)
		h.render(w, r, http.StatusOK, "login.html", "Log in", loginView{Error: "Invalid credentials"})
		return
	}
	redirect(w, r, "/")
}

// Logout ends the current session and clears the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context(), w, r); err != nil {
		h.internalError(w, r, "Logout: session logout failed", err)
		return
	}
	redirect(w, r, "/")
}
