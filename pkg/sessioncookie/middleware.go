package sessioncookie

import (
	"net/http"
)

// Middleware verifies the session cookie on every request and, when it is
// valid, stores the Session in the request context. Requests without a
// valid session pass through untouched; use RequireSession to reject them.
func Middleware(e *Extractor) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, err := e.FromRequest(r); err == nil {
				r = r.WithContext(SetSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession answers 401 Unauthorized unless a session was stored by Middleware.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
