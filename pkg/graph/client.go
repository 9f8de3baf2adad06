package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/graphkit/pkg/logger"
	"github.com/dmitrymomot/graphkit/pkg/requestid"
)

const (
	// DefaultBaseURL is the Graph API host used when none is configured.
	DefaultBaseURL = "https://graph.facebook.com"

	accessTokenParam = "access_token"
	methodParam      = "method"
	redacted         = "REDACTED"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "graphkit/1.0"

	// maxResponseSize bounds how much of a response body is read.
	maxResponseSize = 32 << 20
)

// Client is a Graph API client. The zero value is not usable; use New.
// A Client is safe for concurrent use.
type Client struct {
	mu          sync.RWMutex
	accessToken string

	tokenSource oauth2.TokenSource
	baseURL     string
	version     string
	userAgent   string
	timeout     time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
}

// New creates a client. An empty accessToken gives an anonymous client that
// can only read public objects.
func New(accessToken string, opts ...Option) *Client {
	c := &Client{
		accessToken: accessToken,
		baseURL:     DefaultBaseURL,
		userAgent:   defaultUserAgent,
		timeout:     defaultTimeout,
		logger:      logger.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c
}

// AccessToken returns the static credential, if any.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken replaces the static credential. Calls already in flight keep
// the token they started with.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) credential() (string, error) {
	if token := c.AccessToken(); token != "" {
		return token, nil
	}
	if c.tokenSource == nil {
		return "", nil
	}
	tok, err := c.tokenSource.Token()
	if err != nil {
		return "", tokenError("token source", err)
	}
	return tok.AccessToken, nil
}

// GetObject fetches the given object from the graph.
func (c *Client) GetObject(ctx context.Context, id string, params Params) (any, error) {
	return c.Request(ctx, id, params.orEmpty(), nil)
}

// GetObjects fetches all of the given objects in a single request and returns
// a map from id to object. If any id is invalid the whole call fails with the
// API error reported by the remote service.
func (c *Client) GetObjects(ctx context.Context, ids []string, params Params) (map[string]any, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no object ids", ErrInvalidParams)
	}
	res, err := c.Request(ctx, strings.Join(ids, ","), params.orEmpty(), nil)
	if err != nil {
		return nil, err
	}
	objects, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object keyed by id, got %T", ErrDecode, res)
	}
	return objects, nil
}

// GetConnections fetches the named connection of the given object,
// e.g. GetConnections(ctx, "me", "friends", nil).
func (c *Client) GetConnections(ctx context.Context, id, connection string, params Params) (any, error) {
	return c.Request(ctx, id+"/"+connection, params.orEmpty(), nil)
}

// PutObject writes an object to the graph, connected to parentID through the
// named connection. It requires a credential and fails with ErrUnauthenticated
// before touching the network otherwise, including when the token source
// yields an empty token.
//
//	c.PutObject(ctx, "me", "feed", nil, graph.Params{"message": "Hello, world"})
func (c *Client) PutObject(ctx context.Context, parentID, connection string, query, body Params) (any, error) {
	token, err := c.credential()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}
	if body == nil {
		body = Params{}
	}
	return c.send(ctx, token, parentID+"/"+connection, query, body)
}

// Attachment is the structured part of a wall post.
type Attachment struct {
	Name        string
	Link        string
	Caption     string
	Description string
	Picture     string
	// Extra holds any additional fields sent with the post.
	Extra Params
}

func (a Attachment) params() Params {
	p := Params{}
	set := func(k, v string) {
		if v != "" {
			p[k] = v
		}
	}
	set("name", a.Name)
	set("link", a.Link)
	set("caption", a.Caption)
	set("description", a.Description)
	set("picture", a.Picture)
	return p.merge(a.Extra)
}

// PutWallPost writes a post to targetID's wall. An empty targetID posts to
// the authenticated user's own wall ("me").
func (c *Client) PutWallPost(ctx context.Context, message string, attachment Attachment, targetID string) (any, error) {
	if targetID == "" {
		targetID = "me"
	}
	body := attachment.params()
	body["message"] = message
	return c.PutObject(ctx, targetID, "feed", nil, body)
}

// PutComment comments on the given object.
func (c *Client) PutComment(ctx context.Context, objectID, message string) (any, error) {
	return c.PutObject(ctx, objectID, "comments", nil, Params{"message": message})
}

// PutLike likes the given object.
func (c *Client) PutLike(ctx context.Context, objectID string) (any, error) {
	return c.PutObject(ctx, objectID, "likes", nil, Params{})
}

// DeleteObject deletes the object with the given id. The Graph API expects
// deletes as a POST carrying method=delete; the result is usually a boolean.
func (c *Client) DeleteObject(ctx context.Context, id string) (any, error) {
	return c.Request(ctx, id, nil, Params{methodParam: "delete"})
}

// Request fetches path from the Graph API. A non-nil body makes it a
// form-encoded POST; otherwise it is a GET. The credential, if any, is added
// to the body when there is one and to the query otherwise.
//
// The decoded JSON value is returned as-is: an object, array, string,
// json.Number or bool. An error envelope in the response yields *APIError.
func (c *Client) Request(ctx context.Context, path string, query, body Params) (any, error) {
	token, err := c.credential()
	if err != nil {
		return nil, err
	}
	return c.send(ctx, token, path, query, body)
}

func (c *Client) send(ctx context.Context, token, path string, query, body Params) (any, error) {
	query, body = query.clone(), body.clone()

	if token != "" {
		if body != nil {
			body[accessTokenParam] = token
		} else {
			if query == nil {
				query = Params{}
			}
			query[accessTokenParam] = token
		}
	}

	req, err := c.newRequest(ctx, path, query, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = redactToken(err)
		c.logger.WarnContext(ctx, "graph request failed",
			logger.Method(req.Method),
			logger.Path(path),
			logger.Duration(time.Since(start)),
			logger.Error(err),
			logger.Component("graph"),
		)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	c.logger.DebugContext(ctx, "graph request",
		logger.Method(req.Method),
		logger.Path(path),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
		logger.Component("graph"),
	)

	result, err := decodeResponse(data)
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok {
			c.logger.WarnContext(ctx, "graph api error",
				logger.Path(path),
				logger.StatusCode(resp.StatusCode),
				logger.ErrorCode(apiErr.Code),
				logger.Error(err),
				logger.Component("graph"),
			)
		}
		return nil, err
	}
	return result, nil
}

func (c *Client) newRequest(ctx context.Context, path string, query, body Params) (*http.Request, error) {
	target := c.baseURL + "/"
	if c.version != "" {
		target += c.version + "/"
	}
	target += strings.TrimPrefix(path, "/")

	rawQuery, err := EncodeParams(query)
	if err != nil {
		return nil, err
	}
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	method := http.MethodGet
	var reader io.Reader
	if body != nil {
		method = http.MethodPost
		form, err := EncodeParams(body)
		if err != nil {
			return nil, err
		}
		reader = strings.NewReader(form)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}
	return req, nil
}

// redactToken masks the access token in the URL carried by a *url.Error,
// which net/http puts verbatim into the error text.
func redactToken(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		return &url.Error{Op: ue.Op, URL: redacted, Err: ue.Err}
	}
	q := u.Query()
	if !q.Has(accessTokenParam) {
		return err
	}
	q.Set(accessTokenParam, redacted)
	u.RawQuery = q.Encode()
	return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
}

// decodeResponse parses a Graph response body. Top-level scalars such as a
// bare true are valid JSON here and decode as themselves.
func decodeResponse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after json value", ErrDecode)
	}

	if obj, ok := v.(map[string]any); ok {
		if apiErr := parseAPIError(obj["error"]); apiErr != nil {
			return nil, apiErr
		}
	}
	return v, nil
}

// parseAPIError builds an APIError from the value of an "error" field.
// Absent, null and false values mean no error.
func parseAPIError(v any) *APIError {
	switch e := v.(type) {
	case nil:
		return nil
	case bool:
		if !e {
			return nil
		}
		return &APIError{Message: "unknown error"}
	case string:
		return &APIError{Message: e}
	case map[string]any:
		apiErr := &APIError{
			Code:    intValue(e["code"]),
			Subcode: intValue(e["error_subcode"]),
		}
		apiErr.Message, _ = e["message"].(string)
		apiErr.Type, _ = e["type"].(string)
		apiErr.TraceID, _ = e["fbtrace_id"].(string)
		return apiErr
	default:
		return &APIError{Message: fmt.Sprint(e)}
	}
}

func intValue(v any) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(n)
	}
	return 0
}

// orEmpty turns an absent parameter map into an empty one, so reads always
// send their arguments (and credential) in the query string.
func (p Params) orEmpty() Params {
	if p == nil {
		return Params{}
	}
	return p
}
