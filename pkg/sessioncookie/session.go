package sessioncookie

import (
	"strconv"
	"time"
)

// Session holds every component of a verified session cookie, keyed by name.
// It always contains at least "uid", "access_token", "expires" and "sig".
type Session map[string]string

// UID returns the id of the logged-in user.
func (s Session) UID() string { return s["uid"] }

// AccessToken returns the OAuth access token usable with the graph client.
func (s Session) AccessToken() string { return s["access_token"] }

// Signature returns the cookie signature.
func (s Session) Signature() string { return s["sig"] }

// ExpiresAt returns the expiry time, or the zero time if it cannot be parsed.
func (s Session) ExpiresAt() time.Time {
	sec, err := strconv.ParseInt(s["expires"], 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
