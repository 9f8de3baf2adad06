// Package sessioncookie recovers the session that the browser-side JavaScript
// SDK stores in a signed cookie named "fbs_<app id>".
//
// The cookie value is a list of key=value components (uid, access_token,
// expires, sig, ...). A session is returned only when the MD5 signature,
// computed over every component except sig followed by the application
// secret, matches sig and the current time is strictly before expires.
// Nothing is persisted and no network call is made.
//
// # Usage
//
//	import "github.com/dmitrymomot/graphkit/pkg/sessioncookie"
//
//	session, err := sessioncookie.Extract(cookies, appID, appSecret)
//	if errors.Is(err, sessioncookie.ErrNoSession) {
//	    // not logged in
//	}
//	client := graph.New(session.AccessToken())
//
// With net/http, wrap handlers with Middleware and read the session back
// with FromContext:
//
//	ex, err := sessioncookie.New(appID, appSecret)
//	mux.Handle("/me", sessioncookie.Middleware(ex)(sessioncookie.RequireSession(handler)))
//
// # Error Handling
//
// Every failed extraction wraps ErrNoSession. ErrInvalidSignature and
// ErrExpired tell the two verification failures apart. New reports
// ErrNoAppID and ErrNoSecret for missing credentials; these are configuration
// errors and do not wrap ErrNoSession. The package-level Extract wraps them
// with ErrNoSession so callers only need one check.
package sessioncookie
