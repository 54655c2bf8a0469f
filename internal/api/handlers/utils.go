// filepath: internal/api/handlers/utils.go
package handlers

import (
	"blog/internal/services/auth"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// parseID reads the {id} path variable.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// getUserFromContext returns the authenticated username or "".
func getUserFromContext(r *http.Request) string {
	username, _ := auth.UserFromContext(r.Context())
	return username
}

// postURL is the detail page of a post.
func postURL(id int64) string {
	return fmt.Sprintf("/post/%d", id)
}

// redirect answers with 303 See Other so browsers follow a POST with a GET.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
