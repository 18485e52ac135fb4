package core

import "context"

type requestMetaKey struct{}

// RequestMeta describes the client behind a mutation.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// logArgs returns the metadata as slog key/value pairs.
func (m RequestMeta) logArgs() []any {
	return []any{"ip", m.IP, "user_agent", m.UserAgent}
}

// WithRequestMeta attaches client metadata to ctx for mutation logging.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the metadata attached by WithRequestMeta,
// or the zero value.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}
