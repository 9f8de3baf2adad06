package sessioncookie

import "context"

type contextKey struct{ name string }

func (c contextKey) String() string { return c.name }

var sessionContextKey = &contextKey{name: "graph_session"}

// SetSession stores s in ctx.
func SetSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext returns the session stored by Middleware, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(Session)
	return s, ok && s != nil
}
