package sessioncookie_test

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/graphkit/pkg/logger"
	"github.com/dmitrymomot/graphkit/pkg/sessioncookie"
)

const (
	appID     = "app"
	appSecret = "s3cr3t"
)

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestExtract_ValidCookie(t *testing.T) {
	t.Parallel()

	sig := md5hex("uid=5&expires=9999999999" + appSecret)
	cookies := map[string]string{
		"fbs_app": "uid=5&expires=9999999999&sig=" + sig,
	}

	session, err := sessioncookie.Extract(cookies, appID, appSecret)
	require.NoError(t, err)
	assert.Equal(t, "5", session.UID())
	assert.Equal(t, sig, session.Signature())
	assert.Equal(t, int64(9999999999), session.ExpiresAt().Unix())
	assert.Len(t, session, 3)
}

func TestExtract_Failures(t *testing.T) {
	t.Parallel()

	valid := sessioncookie.Sign(appSecret, "access_token=tok", "expires=9999999999", "uid=5")

	tests := []struct {
		name    string
		cookies map[string]string
		wantErr error
	}{
		{
			name:    "no cookie",
			cookies: map[string]string{"other": valid},
			wantErr: sessioncookie.ErrNoSession,
		},
		{
			name:    "empty cookie",
			cookies: map[string]string{"fbs_app": ""},
			wantErr: sessioncookie.ErrNoSession,
		},
		{
			name:    "tampered signature",
			cookies: map[string]string{"fbs_app": "uid=5&expires=9999999999&sig=" + md5hex("tampered")},
			wantErr: sessioncookie.ErrInvalidSignature,
		},
		{
			name:    "tampered component",
			cookies: map[string]string{"fbs_app": strings.Replace(valid, "uid=5", "uid=6", 1)},
			wantErr: sessioncookie.ErrInvalidSignature,
		},
		{
			name:    "missing signature",
			cookies: map[string]string{"fbs_app": "uid=5&expires=9999999999"},
			wantErr: sessioncookie.ErrInvalidSignature,
		},
		{
			name:    "wrong secret",
			cookies: map[string]string{"fbs_app": sessioncookie.Sign("other", "uid=5", "expires=9999999999")},
			wantErr: sessioncookie.ErrInvalidSignature,
		},
		{
			name:    "expired",
			cookies: map[string]string{"fbs_app": sessioncookie.Sign(appSecret, "uid=5", "expires=1260910800")},
			wantErr: sessioncookie.ErrExpired,
		},
		{
			name:    "missing expiry",
			cookies: map[string]string{"fbs_app": sessioncookie.Sign(appSecret, "uid=5")},
			wantErr: sessioncookie.ErrExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			session, err := sessioncookie.Extract(tt.cookies, appID, appSecret)
			require.Error(t, err)
			assert.Nil(t, session)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, sessioncookie.ErrNoSession)
		})
	}
}

func TestExtract_MissingCredentials(t *testing.T) {
	t.Parallel()

	_, err := sessioncookie.Extract(map[string]string{}, "", appSecret)
	assert.ErrorIs(t, err, sessioncookie.ErrNoAppID)
	assert.ErrorIs(t, err, sessioncookie.ErrNoSession)

	// Signed with an empty secret: still no session.
	cookies := map[string]string{"fbs_app": sessioncookie.Sign("", "uid=5", "expires=9999999999")}
	session, err := sessioncookie.Extract(cookies, appID, "")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, sessioncookie.ErrNoSecret)
	assert.ErrorIs(t, err, sessioncookie.ErrNoSession)

	_, err = sessioncookie.New(appID, "")
	assert.ErrorIs(t, err, sessioncookie.ErrNoSecret)
	assert.NotErrorIs(t, err, sessioncookie.ErrNoSession)
}

func TestExtractor_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cookie := sessioncookie.Sign(appSecret, "uid=5", "expires=1893456000")
	cookies := map[string]string{"fbs_app": cookie}

	tests := []struct {
		name  string
		now   time.Time
		valid bool
	}{
		{"one second before", expires.Add(-time.Second), true},
		{"sub-second before", expires.Add(-time.Millisecond), true},
		{"exactly at expiry", expires, false},
		{"after expiry", expires.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ex, err := sessioncookie.New(appID, appSecret, sessioncookie.WithClock(func() time.Time { return tt.now }))
			require.NoError(t, err)

			_, err = ex.Extract(cookies)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, sessioncookie.ErrExpired)
			}
		})
	}
}

func TestExtractor_QuotedAndEscapedCookie(t *testing.T) {
	t.Parallel()

	raw := sessioncookie.Sign(appSecret,
		"access_token=124%7C2.abc%7C5",
		"base_domain=example.com",
		"expires=9999999999",
		"secret=xyz",
		"session_key=2.abc",
		"uid=5",
	)

	session, err := sessioncookie.Extract(map[string]string{"fbs_app": `"` + raw + `"`}, appID, appSecret)
	require.NoError(t, err)

	assert.Equal(t, "124|2.abc|5", session.AccessToken())
	assert.Equal(t, "example.com", session["base_domain"])
	assert.Equal(t, "5", session.UID())
}

func TestExtractor_PreservesComponentOrder(t *testing.T) {
	t.Parallel()

	// The signature covers components in the order they appear, so a
	// reordered cookie no longer verifies.
	raw := sessioncookie.Sign(appSecret, "uid=5", "expires=9999999999")
	reordered := "expires=9999999999&uid=5" + raw[len("uid=5&expires=9999999999"):]

	_, err := sessioncookie.Extract(map[string]string{"fbs_app": raw}, appID, appSecret)
	require.NoError(t, err)

	_, err = sessioncookie.Extract(map[string]string{"fbs_app": reordered}, appID, appSecret)
	assert.ErrorIs(t, err, sessioncookie.ErrInvalidSignature)
}

func TestExtractor_CookiePrefix(t *testing.T) {
	t.Parallel()

	ex, err := sessioncookie.New(appID, appSecret, sessioncookie.WithCookiePrefix("fbsr_"))
	require.NoError(t, err)
	assert.Equal(t, "fbsr_app", ex.CookieName())

	cookie := sessioncookie.Sign(appSecret, "uid=5", "expires=9999999999")

	_, err = ex.Extract(map[string]string{"fbs_app": cookie})
	assert.ErrorIs(t, err, sessioncookie.ErrNoSession)

	session, err := ex.Extract(map[string]string{"fbsr_app": cookie})
	require.NoError(t, err)
	assert.Equal(t, "5", session.UID())
}

func TestExtractor_LogsRejections(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	ex, err := sessioncookie.New(appID, appSecret,
		sessioncookie.WithLogger(logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithLevel(slog.LevelDebug))),
	)
	require.NoError(t, err)

	_, err = ex.Verify("uid=5&expires=9999999999&sig=bad")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "reason=\"signature mismatch\"")
	assert.Contains(t, buf.String(), "user_id=5")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	ex, err := sessioncookie.NewFromConfig(sessioncookie.Config{
		AppID:        "123",
		AppSecret:    appSecret,
		CookiePrefix: "fbs_",
	})
	require.NoError(t, err)
	assert.Equal(t, "fbs_123", ex.CookieName())

	_, err = sessioncookie.NewFromConfig(sessioncookie.Config{AppID: "123"})
	assert.ErrorIs(t, err, sessioncookie.ErrNoSecret)
}

func TestSession_ExpiresAtInvalid(t *testing.T) {
	t.Parallel()
	assert.True(t, sessioncookie.Session{"expires": "soon"}.ExpiresAt().IsZero())
}
