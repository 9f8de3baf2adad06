package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header carries the request id on inbound requests, responses and
	// outbound Graph API calls.
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Generate returns a fresh request id.
func Generate() string {
	return uuid.NewString()
}

// Valid reports whether id is an acceptable client-supplied request id.
func Valid(id string) bool {
	return len(id) > 0 && len(id) <= maxIDLength && validID.MatchString(id)
}

// Middleware stores a request id in the request context and echoes it in the
// response. A valid inbound X-Request-ID is reused; anything else is replaced.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = Generate()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}
