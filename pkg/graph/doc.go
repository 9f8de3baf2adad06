// Package graph is a small client for the Graph API: objects (people, pages,
// events, photos) and the named connections between them (friends, feed,
// comments, likes).
//
// Every method performs exactly one HTTP round trip. There is no batching,
// pagination, retry or caching; the remote service is authoritative for the
// object model and for error codes.
//
// # Usage
//
//	import "github.com/dmitrymomot/graphkit/pkg/graph"
//
//	client := graph.New(accessToken)
//
//	user, err := client.GetObject(ctx, "me", nil)
//	friends, err := client.GetConnections(ctx, "me", "friends", nil)
//
//	// Writes require an access token.
//	_, err = client.PutWallPost(ctx, "Hello, world", graph.Attachment{
//	    Name: "Link name",
//	    Link: "https://www.example.com/",
//	}, "")
//
// # Requests
//
// Request is the single primitive used by every other method. A non-nil body
// turns the call into a form-encoded POST, otherwise it is a GET. The access
// token is injected into the body when one is sent and into the query string
// otherwise, never both. Parameter values that are not strings are sent
// JSON-encoded (see EncodeParams). Deletes are sent as a POST carrying
// method=delete, which is what the Graph API expects.
//
// Responses are returned as decoded JSON: map[string]any, []any, string,
// json.Number or bool. Decode and GetObjectAs convert them into typed values.
//
// # Authentication
//
// The credential is either a static access token (New, SetAccessToken) or an
// oauth2.TokenSource (WithTokenSource). OAuth wraps the authorization code
// exchange and the client_credentials grant for application tokens.
//
// # Configuration
//
// Config can be loaded from the environment with pkg/config:
//
//	var cfg graph.Config
//	if err := config.Load(&cfg); err != nil { ... }
//	client := graph.NewFromConfig(cfg, graph.WithLogger(log))
//
// # Error Handling
//
// Errors wrap one of ErrUnauthenticated, ErrAPI, ErrTransport, ErrDecode or
// ErrInvalidParams. Remote errors are *APIError values carrying the code and
// message exactly as the service returned them:
//
//	_, err := client.GetObject(ctx, "me", nil)
//	if apiErr, ok := graph.AsAPIError(err); ok && apiErr.Code == 190 {
//	    // token expired
//	}
//
// Kind maps any error to an ErrorKind for switch-style handling.
package graph
