package sessioncookie

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/graphkit/pkg/logger"
)

const sigKey = "sig"

// Extractor verifies session cookies for one application.
// The zero value is not usable; use New.
type Extractor struct {
	appID  string
	secret string
	prefix string
	now    func() time.Time
	logger *slog.Logger
}

// New creates an Extractor for the given application id and secret.
func New(appID, appSecret string, opts ...Option) (*Extractor, error) {
	if appID == "" {
		return nil, ErrNoAppID
	}
	if appSecret == "" {
		return nil, ErrNoSecret
	}

	e := &Extractor{
		appID:  appID,
		secret: appSecret,
		prefix: DefaultCookiePrefix,
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract looks up the session cookie of appID in cookies and verifies it.
// It is a shortcut for New(appID, appSecret) followed by Extractor.Extract.
// Every failure wraps ErrNoSession, including a missing appID or secret.
func Extract(cookies map[string]string, appID, appSecret string) (Session, error) {
	e, err := New(appID, appSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	return e.Extract(cookies)
}

// CookieName returns the name of the cookie carrying the session.
func (e *Extractor) CookieName() string {
	return e.prefix + e.appID
}

// Extract verifies the session cookie found in cookies, a map from cookie
// name to raw value. Every failure wraps ErrNoSession.
func (e *Extractor) Extract(cookies map[string]string) (Session, error) {
	raw, ok := cookies[e.CookieName()]
	if !ok || raw == "" {
		return nil, ErrNoSession
	}
	return e.Verify(raw)
}

// FromRequest verifies the session cookie sent with r.
func (e *Extractor) FromRequest(r *http.Request) (Session, error) {
	c, err := r.Cookie(e.CookieName())
	if err != nil || c.Value == "" {
		return nil, ErrNoSession
	}
	return e.Verify(c.Value)
}

// Verify checks a raw cookie value of the form
//
//	access_token=...&expires=1260910800&uid=5&sig=<md5 hex>
//
// The signature is the MD5 of every component except sig, in cookie order
// and joined by "&", followed by the application secret. The session is
// valid while the current time in seconds is strictly before expires.
func (e *Extractor) Verify(raw string) (Session, error) {
	raw = unquote(raw)

	parts := strings.Split(raw, "&")
	session := make(Session, len(parts))
	payload := make([]string, 0, len(parts))
	for _, part := range parts {
		key, value, _ := strings.Cut(part, "=")
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		session[key] = value
		if key != sigKey {
			payload = append(payload, part)
		}
	}

	expected := digest(strings.Join(payload, "&"), e.secret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(session.Signature())) != 1 {
		e.reject("signature mismatch", session)
		return nil, fmt.Errorf("%w: %w", ErrNoSession, ErrInvalidSignature)
	}

	expires, err := strconv.ParseInt(session["expires"], 10, 64)
	if err != nil {
		e.reject("unparseable expiry", session)
		return nil, fmt.Errorf("%w: %w: invalid expires value", ErrNoSession, ErrExpired)
	}
	if e.now().Unix() >= expires {
		e.reject("expired", session)
		return nil, fmt.Errorf("%w: %w", ErrNoSession, ErrExpired)
	}

	return session, nil
}

func (e *Extractor) reject(reason string, s Session) {
	e.logger.Debug("session cookie rejected",
		slog.String("reason", reason),
		logger.UserID(s.UID()),
		logger.Component("sessioncookie"),
	)
}

// Sign returns a cookie value made of components (each a raw "key=value"
// pair) followed by a matching sig component. It mirrors what the
// JavaScript SDK writes and is mostly useful in tests.
func Sign(appSecret string, components ...string) string {
	payload := strings.Join(components, "&")
	return payload + "&" + sigKey + "=" + digest(payload, appSecret)
}

func digest(payload, secret string) string {
	sum := md5.Sum([]byte(payload + secret))
	return hex.EncodeToString(sum[:])
}

// unquote strips the double quotes the JavaScript SDK wraps the value in.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
