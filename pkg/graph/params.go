package graph

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Params holds request arguments. Values are strings, numbers, booleans or
// any other JSON-serialisable value; everything except a string is sent
// JSON-encoded.
type Params map[string]any

// EncodeParams renders params as an application/x-www-form-urlencoded string.
// Keys are emitted in sorted order. A nil or empty map encodes to "".
func EncodeParams(params Params) (string, error) {
	if len(params) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		v, err := encodeValue(params[k])
		if err != nil {
			return "", fmt.Errorf("%w: %q: %w", ErrInvalidParams, k, err)
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String(), nil
}

func encodeValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.RawMessage:
		return string(val), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// clone returns a shallow copy so request preparation never mutates the
// caller's map. A nil map stays nil: nil and empty mean different things to
// Request.
func (p Params) clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// merge copies every entry of src into p, overwriting existing keys.
func (p Params) merge(src Params) Params {
	for k, v := range src {
		p[k] = v
	}
	return p
}
