package handler

import (
	"net/http"

	mw "github.com/garrison-vtt/garrison/internal/api/middleware"
	"github.com/garrison-vtt/garrison/internal/api/response"
)

// User serves information about the authenticated caller.
type User struct{}

// NewUser creates a new User handler.
func NewUser() *User {
	return &User{}
}

// Me returns the id and name of the principal attached by the auth middleware.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := mw.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"id":   principal.ID,
		"name": principal.Name,
	})
}
