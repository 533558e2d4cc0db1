package handlers

import "net/http"

// authUserID returns the authenticated user id stored on the request context
// by the auth middleware.
func authUserID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value("user_id").(int)
	return id, ok
}
