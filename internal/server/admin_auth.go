package server

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const adminPassHeader = "X-Admin-Password"

// adminAuthMiddleware guards the admin routes with a shared credential,
// compared against the configured bcrypt hash.
func adminAuthMiddleware(passHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pass := r.Header.Get(adminPassHeader)
			if pass == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(passHash), []byte(pass)); err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
