package sessioncookie

import "errors"

// ErrNoSession is the single "no session" signal. ErrInvalidSignature and
// ErrExpired are always reported wrapped together with it, so
// errors.Is(err, ErrNoSession) holds for every failed extraction.
var (
	ErrNoSession        = errors.New("sessioncookie.no_session")
	ErrInvalidSignature = errors.New("sessioncookie.invalid_signature")
	ErrExpired          = errors.New("sessioncookie.expired")
	ErrNoSecret         = errors.New("sessioncookie.no_secret")
	ErrNoAppID          = errors.New("sessioncookie.no_app_id")
)
