package graph

import (
	"errors"
	"fmt"
)

// Error kinds returned by the client. Every error produced by a Client wraps
// exactly one of these, so callers can branch with errors.Is or Kind.
var (
	ErrUnauthenticated = errors.New("graph: write operations require an access token")
	ErrAPI             = errors.New("graph: api error")
	ErrTransport       = errors.New("graph: transport error")
	ErrDecode          = errors.New("graph: invalid json response")
	ErrInvalidParams   = errors.New("graph: invalid request parameters")
)

// APIError is the error envelope returned by the Graph API:
//
//	{"error": {"code": 190, "type": "OAuthException", "message": "Invalid token"}}
//
// Code and Message are carried verbatim from the response.
type APIError struct {
	Code    int    `json:"code"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Subcode int    `json:"error_subcode,omitempty"`
	TraceID string `json:"fbtrace_id,omitempty"`
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("graph: %s (#%d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("graph: api error (#%d): %s", e.Code, e.Message)
}

// Is reports ErrAPI as a match so errors.Is(err, ErrAPI) works on wrapped API errors.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// ErrorKind discriminates the failure modes of a Graph call.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnauthenticated
	KindAPI
	KindTransport
	KindDecode
	KindInvalidParams
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAPI:
		return "api"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindInvalidParams:
		return "invalid_params"
	default:
		return "unknown"
	}
}

// Kind classifies err. A nil error is KindNone; errors not produced by this
// package are KindUnknown.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrAPI):
		return KindAPI
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrInvalidParams):
		return KindInvalidParams
	default:
		return KindUnknown
	}
}

// AsAPIError returns the remote error carried by err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
