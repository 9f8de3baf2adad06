package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/facebook"
)

// OAuthConfig holds the application credentials used to obtain access tokens.
type OAuthConfig struct {
	AppID       string   `env:"GRAPH_APP_ID,required,notEmpty"`
	AppSecret   string   `env:"GRAPH_APP_SECRET,required,notEmpty"`
	RedirectURL string   `env:"GRAPH_OAUTH_REDIRECT_URL"`
	Scopes      []string `env:"GRAPH_OAUTH_SCOPES" envSeparator:","`
	TokenURL    string   `env:"GRAPH_OAUTH_TOKEN_URL"` // empty means the Facebook default
	AuthURL     string   `env:"GRAPH_OAUTH_AUTH_URL"`  // empty means the Facebook default
}

// OAuth wraps the code and client-credentials flows of the Graph API.
type OAuth struct {
	config oauth2.Config
	opts   []Option
}

// NewOAuth creates an OAuth helper. The options are applied to every Client it creates.
func NewOAuth(cfg OAuthConfig, opts ...Option) *OAuth {
	endpoint := facebook.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &OAuth{
		config: oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
		opts: opts,
	}
}

// AuthCodeURL returns the login dialog URL the user should be redirected to.
func (o *OAuth) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state)
}

// Exchange converts an authorization code into a user access token.
func (o *OAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: empty authorization code", ErrInvalidParams)
	}
	tok, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, tokenError("code exchange", err)
	}
	return tok, nil
}

// UserClient exchanges code and returns a Client authenticated as that user.
func (o *OAuth) UserClient(ctx context.Context, code string) (*Client, error) {
	tok, err := o.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	opts := append([]Option{WithTokenSource(o.config.TokenSource(ctx, tok))}, o.opts...)
	return New("", opts...), nil
}

// AppTokenSource returns a token source yielding the application access
// token through the client_credentials grant. Tokens are cached until expiry.
func (o *OAuth) AppTokenSource(ctx context.Context) oauth2.TokenSource {
	cc := clientcredentials.Config{
		ClientID:     o.config.ClientID,
		ClientSecret: o.config.ClientSecret,
		TokenURL:     o.config.Endpoint.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	return cc.TokenSource(ctx)
}

// AppClient returns a Client authenticated with the application access token.
func (o *OAuth) AppClient(ctx context.Context) *Client {
	opts := append([]Option{WithTokenSource(o.AppTokenSource(ctx))}, o.opts...)
	return New("", opts...)
}

// tokenError classifies a token endpoint failure: a response from the
// endpoint is an API error, anything else is a transport error.
func tokenError(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return fmt.Errorf("%w: %s: %w", ErrAPI, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
}
