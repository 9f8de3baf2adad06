package graph

import (
	"context"
	"encoding/json"
	"fmt"
)

// Decode converts a value returned by Request into T by round-tripping it
// through JSON.
func Decode[T any](v any) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return out, nil
}

// GetObjectAs fetches an object and decodes it into T.
//
//	type User struct {
//		ID   string `json:"id"`
//		Name string `json:"name"`
//	}
//	user, err := graph.GetObjectAs[User](ctx, client, "me", nil)
func GetObjectAs[T any](ctx context.Context, c *Client, id string, params Params) (T, error) {
	res, err := c.GetObject(ctx, id, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](res)
}

// Connection is the standard envelope of a connection listing. Paging links
// are returned untouched; the client never follows them.
type Connection[T any] struct {
	Data   []T     `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}

// Paging holds the cursors and links of a connection page.
type Paging struct {
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
	Cursors  *struct {
		Before string `json:"before,omitempty"`
		After  string `json:"after,omitempty"`
	} `json:"cursors,omitempty"`
}

// GetConnectionsAs fetches a connection listing and decodes its data into T.
func GetConnectionsAs[T any](ctx context.Context, c *Client, id, connection string, params Params) (Connection[T], error) {
	res, err := c.GetConnections(ctx, id, connection, params)
	if err != nil {
		return Connection[T]{}, err
	}
	return Decode[Connection[T]](res)
}
